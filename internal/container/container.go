package container

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"boutique/catalog/internal/cart"
	"boutique/catalog/internal/client"
	"boutique/catalog/internal/config"
	"boutique/catalog/internal/domain"
	"boutique/catalog/internal/filter"
	"boutique/catalog/internal/message"
	"boutique/catalog/internal/render"
	"boutique/catalog/internal/service"
	"boutique/catalog/internal/state"
	"boutique/catalog/internal/storage"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Lookup  *domain.Lookup
	Client  client.CatalogClient
	Store   storage.Store
	Cart    *cart.Cart
	Browser *state.Browser
	Service *service.Service

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		Lookup: domain.NewLookup(),
	}

	switch cfg.Cart.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")
		c.redis = rdb
		c.Store = storage.NewRedisStore(rdb)
	case "memory":
		c.Store = storage.NewMemStore()
	default:
		c.Store = storage.NewFileStore(cfg.Cart.Dir)
	}

	c.Cart = cart.New(c.Store, cfg.Cart.Key, c.Lookup)
	c.Client = client.NewCatalogClient(cfg.Catalog, c.Lookup)

	index := c.Client.LoadIndex(context.Background())
	c.Browser = state.NewBrowser(index, c.Client)

	builder := message.NewBuilder(cfg.Store.WhatsAppNumber, cfg.Message.SoftLimit, cfg.Message.CompactItems)
	renderer := render.NewConsole(os.Stdout, builder.Money)

	c.Service = service.NewService(c.Browser, filter.New(), c.Cart, builder, renderer)

	return c, nil
}

// Run starts the session and drives it from a line-oriented command
// loop until EOF or "salir".
func (c *Container) Run(ctx context.Context) error {
	if err := c.Service.Start(ctx); err != nil {
		return err
	}

	fmt.Printf("%s · escribí 'ayuda' para ver los comandos\n", c.Config.Store.Name)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch cmd {
		case "salir", "quit":
			return scanner.Err()
		case "ayuda", "help":
			printHelp()
		case "cats":
			for _, name := range c.Browser.Categories() {
				fmt.Println(" -", name)
			}
		case "subs":
			for _, name := range c.Browser.Subcategories() {
				fmt.Println(" -", name)
			}
		case "cat":
			err = c.Service.SelectCategory(ctx, arg)
		case "sub":
			err = c.Service.SelectSubcategory(ctx, arg)
		case "buscar":
			c.Service.Search(arg)
		case "orden":
			c.Service.SortBy(filter.SortMode(arg))
		case "mas":
			err = c.Service.LoadMore(ctx)
		case "add":
			id, qty := parseIDQty(arg)
			c.Service.ChangeQuantity(id, qty)
		case "quitar":
			c.Service.RemoveItem(arg)
		case "vaciar":
			c.Service.ClearCart()
		case "nombre":
			c.Service.SetContact(message.Contact{Name: arg})
		case "pedido":
			var text, link string
			text, link, err = c.Service.Checkout()
			if err == nil {
				fmt.Println(text)
				fmt.Println()
				fmt.Println(link)
			}
		default:
			fmt.Printf("comando desconocido: %s\n", cmd)
		}

		if err != nil {
			log.Errorf("❌ %v", err)
		}
	}
	return scanner.Err()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	if c.redis != nil {
		return c.redis.Close()
	}
	return nil
}

func parseIDQty(arg string) (string, int) {
	id, rest, ok := strings.Cut(arg, " ")
	if !ok {
		return arg, 1
	}
	qty, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || qty == 0 {
		qty = 1
	}
	return id, qty
}

func printHelp() {
	fmt.Println(`comandos:
  cats              listar categorías
  subs              listar subcategorías de la categoría activa
  cat <nombre>      elegir categoría
  sub <nombre>      elegir subcategoría ("Todas" para todas)
  buscar <texto>    filtrar por texto (vacío para limpiar)
  orden <modo>      relevancia | az | precio_asc | precio_desc
  mas               cargar más productos
  add <id> [n]      sumar n (default 1, negativo resta) al carrito
  quitar <id>       sacar un producto del carrito
  vaciar            vaciar el carrito
  nombre <nombre>   nombre para personalizar el pedido
  pedido            armar el mensaje de pedido y el link
  salir             terminar`)
}
