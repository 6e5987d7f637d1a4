package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/romeroalan26/posfacturard-console/internal/api"
	"github.com/romeroalan26/posfacturard-console/internal/cart"
	"github.com/romeroalan26/posfacturard-console/internal/config"
	"github.com/romeroalan26/posfacturard-console/internal/gateway"
	"github.com/romeroalan26/posfacturard-console/internal/guard"
	"github.com/romeroalan26/posfacturard-console/internal/screen"
	"github.com/romeroalan26/posfacturard-console/internal/session"
)

// routes maps each console view to its access class.
var routes = map[string]guard.RouteClass{
	"dashboard":  guard.Authenticated,
	"pos":        guard.SalesCapable,
	"catalogo":   guard.Authenticated,
	"categorias": guard.Authenticated,
	"gastos":     guard.Authenticated,
	"ventas":     guard.Authenticated,
	"usuarios":   guard.AdminOnly,
	"bienvenida": guard.GuestOnly,
}

type app struct {
	cfg   *config.Config
	store session.Store

	login      *screen.Login
	dashboard  *screen.Dashboard
	pos        *screen.POS
	catalogo   *screen.Catalog
	categorias *screen.Categorias
	gastos     *screen.Gastos
	ventas     *screen.Ventas
	usuarios   *screen.Usuarios
}

func main() {
	// Structured logger — dev: pretty, prod: JSON
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	store := session.NewFileStore(cfg.SessionFile)

	gw := gateway.New(cfg.APIBaseURL, store, gateway.Options{
		Timeout:          time.Duration(cfg.HTTPTimeoutSeconds) * time.Second,
		FailureThreshold: cfg.CBFailureThreshold,
		OpenTimeout:      time.Duration(cfg.CBOpenTimeoutSeconds) * time.Second,
		OnUnauthorized:   func() { fmt.Println("\nSesion expirada — inicie sesion de nuevo.") },
	})

	productos := api.NewProductoClient(gw)
	ventasClient := api.NewVentaClient(gw)
	debounce := time.Duration(cfg.SearchDebounceMs) * time.Millisecond
	msgTTL := time.Duration(cfg.MessageTTLSeconds) * time.Second

	a := &app{
		cfg:        cfg,
		store:      store,
		login:      screen.NewLogin(api.NewAuthClient(gw), store, msgTTL),
		dashboard:  screen.NewDashboard(api.NewReporteClient(gw), msgTTL),
		pos:        screen.NewPOS(productos, cart.NewEngine(ventasClient), cfg.PageSize, debounce, msgTTL),
		catalogo:   screen.NewCatalog(productos, cfg.PageSize, debounce, msgTTL),
		categorias: screen.NewCategorias(api.NewCategoriaClient(gw), cfg.PageSize, msgTTL),
		gastos:     screen.NewGastos(api.NewGastoClient(gw), cfg.PageSize, cfg.ExportDir, msgTTL),
		ventas:     screen.NewVentas(ventasClient, cfg.PageSize, msgTTL),
		usuarios:   screen.NewUsuarios(api.NewUsuarioClient(gw), cfg.PageSize, msgTTL),
	}

	if err := a.run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("console exited with error")
	}
}

// run is the outer input loop. All behavior lives in internal/; this is
// navigation glue only.
func (a *app) run(ctx context.Context) error {
	fmt.Println("POSFacturaRD — consola administrativa")
	if s, ok := a.store.Current(); ok {
		if claims, err := session.Claims(s.Token); err == nil && !claims.ExpiresAt().IsZero() {
			fmt.Printf("Sesion de %s (rol %s), expira %s\n",
				s.User.Username, s.User.Rol, claims.ExpiresAt().Format(time.RFC822))
		} else {
			fmt.Printf("Sesion de %s (rol %s)\n", s.User.Username, s.User.Rol)
		}
	} else {
		fmt.Println("Sin sesion — use: login <email> <password>")
	}

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "salir", "exit":
			return nil
		case "login":
			if len(fields) != 3 {
				fmt.Println("uso: login <email> <password>")
				continue
			}
			if _, err := a.login.Ingresar(ctx, fields[1], fields[2]); err != nil {
				for _, m := range a.login.Msgs.Active() {
					fmt.Println(m.Text)
				}
				continue
			}
			fmt.Println("Sesion iniciada.")
		case "logout":
			if err := a.login.Salir(); err != nil {
				fmt.Println("error:", err)
			}
		default:
			a.navigate(ctx, fields[0])
		}
	}
}

// navigate applies the route guard before entering a view.
func (a *app) navigate(ctx context.Context, name string) {
	class, ok := routes[name]
	if !ok {
		fmt.Println("pantallas: dashboard pos catalogo categorias gastos ventas usuarios | login logout salir")
		return
	}

	sess, present := a.store.Current()
	decision := guard.Evaluate(guard.SessionState{Session: sess, Present: present}, class)
	switch decision.Outcome {
	case guard.Redirect:
		if decision.Target == "/login" {
			fmt.Println("Necesita iniciar sesion.")
		} else {
			fmt.Println("Sin permisos para esta pantalla — volviendo al dashboard.")
			a.show(ctx, "dashboard")
		}
		return
	case guard.Defer:
		fmt.Println("Cargando sesion…")
		return
	}
	a.show(ctx, name)
}

func (a *app) show(ctx context.Context, name string) {
	var err error
	switch name {
	case "dashboard":
		if err = a.dashboard.Load(ctx); err == nil {
			d := a.dashboard.Data()
			if d.Resumen != nil {
				fmt.Printf("Ventas hoy: %s | Ventas mes: %s | Gastos mes: %s | Productos bajos: %d\n",
					d.Resumen.VentasHoy, d.Resumen.VentasMes, d.Resumen.GastosMes, d.Resumen.ProductosBajos)
			}
		}
	case "pos":
		if err = a.pos.LoadCatalogo(ctx); err == nil {
			t := a.pos.Cart.Totals()
			fmt.Printf("Carrito: %d lineas | subtotal %s | ITBIS %s | total %s\n",
				a.pos.Cart.Len(), t.Subtotal, t.Impuesto, t.Total)
		}
	case "catalogo":
		if err = a.catalogo.Load(ctx); err == nil {
			page, totalPages, total := a.catalogo.Pagination()
			fmt.Printf("Productos: pagina %d/%d (%d en total)\n", page, totalPages, total)
			for _, p := range a.catalogo.Items() {
				fmt.Printf("  %-30s %10s  stock %d\n", p.Nombre, p.PrecioVenta, p.Stock)
			}
		}
	case "categorias":
		if err = a.categorias.Load(ctx); err == nil {
			for _, c := range a.categorias.Items() {
				fmt.Println("  " + c.Nombre)
			}
		}
	case "gastos":
		if err = a.gastos.Load(ctx); err == nil {
			for _, g := range a.gastos.Items() {
				fmt.Printf("  %s  %s  %s\n", g.Fecha, g.Descripcion, g.Monto)
			}
		}
	case "ventas":
		if err = a.ventas.Load(ctx); err == nil {
			for _, v := range a.ventas.Items() {
				fmt.Printf("  %s  %s  total %s\n", v.CreatedAt, v.MetodoPago, v.Total)
			}
		}
	case "usuarios":
		if err = a.usuarios.Load(ctx); err == nil {
			for _, u := range a.usuarios.Items() {
				fmt.Printf("  %-20s %s\n", u.Username, u.Rol)
			}
		}
	case "bienvenida":
		fmt.Println("Bienvenido, invitado.")
	}
	if err != nil {
		fmt.Println("error:", err)
	}
}
