package application

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/worktrack/worktrack/pkg/apiclient"
	"github.com/worktrack/worktrack/pkg/eventbus"
	"github.com/worktrack/worktrack/pkg/session"
	"github.com/worktrack/worktrack/pkg/spotlight"
	"github.com/worktrack/worktrack/pkg/types"
)

func translate(localizer *i18n.Localizer, items []types.NavigationItem) []types.NavigationItem {
	translated := make([]types.NavigationItem, 0, len(items))
	for _, item := range items {
		name := item.Name
		if localizer != nil {
			if msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: item.Name}); err == nil {
				name = msg
			}
		}
		translated = append(translated, types.NavigationItem{
			Name:       name,
			Href:       item.Href,
			Children:   translate(localizer, item.Children),
			Icon:       item.Icon,
			Permission: item.Permission,
		})
	}
	return translated
}

func listFiles(fsys fs.FS, dir string) ([]string, error) {
	var fileList []string
	err := fs.WalkDir(fsys, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			fileList = append(fileList, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading directory %q: %w", dir, err)
	}
	return fileList, nil
}

type ApplicationOptions struct {
	API                *apiclient.Client
	Sessions           session.Store
	EventBus           eventbus.EventBus
	Bundle             *i18n.Bundle
	SupportedLanguages []string
}

func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return bundle
}

func defaultSupportedLanguageCodes() []string {
	return []string{"en", "zh"}
}

func New(opts *ApplicationOptions) Application {
	supportedLanguages := opts.SupportedLanguages
	if len(supportedLanguages) == 0 {
		supportedLanguages = defaultSupportedLanguageCodes()
	}
	bundle := opts.Bundle
	if bundle == nil {
		bundle = LoadBundle()
	}
	return &application{
		api:                opts.API,
		sessions:           opts.Sessions,
		eventPublisher:     opts.EventBus,
		controllers:        make(map[string]Controller),
		services:           make(map[reflect.Type]interface{}),
		quickLinks:         &spotlight.QuickLinks{},
		permissionSchema:   &PermissionSchema{},
		bundle:             bundle,
		supportedLanguages: supportedLanguages,
	}
}

type application struct {
	mu                 sync.RWMutex
	api                *apiclient.Client
	sessions           session.Store
	eventPublisher     eventbus.EventBus
	services           map[reflect.Type]interface{}
	controllers        map[string]Controller
	controllerOrder    []string
	middleware         []mux.MiddlewareFunc
	hashFsAssets       []*hashfs.FS
	assets             []*embed.FS
	bundle             *i18n.Bundle
	quickLinks         *spotlight.QuickLinks
	permissionSchema   *PermissionSchema
	navItems           []types.NavigationItem
	supportedLanguages []string
}

func (app *application) API() *apiclient.Client {
	return app.api
}

func (app *application) Sessions() session.Store {
	return app.sessions
}

func (app *application) QuickLinks() *spotlight.QuickLinks {
	return app.quickLinks
}

// NavItems returns the registered navigation translated with localizer. It is
// not filtered by permission.
func (app *application) NavItems(localizer *i18n.Localizer) []types.NavigationItem {
	return translate(localizer, app.navItems)
}

func (app *application) RegisterNavItems(items ...types.NavigationItem) {
	app.navItems = append(app.navItems, items...)
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

// Controllers returns controllers in registration order. Registering the same
// key twice replaces the earlier controller.
func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllerOrder))
	for _, key := range app.controllerOrder {
		controllers = append(controllers, app.controllers[key])
	}
	return controllers
}

func (app *application) Assets() []*embed.FS {
	return app.assets
}

func (app *application) HashFsAssets() []*hashfs.FS {
	return app.hashFsAssets
}

func (app *application) PermissionSchema() *PermissionSchema {
	return app.permissionSchema
}

func (app *application) RegisterPermissionSchema(data []byte) error {
	schema, err := ParsePermissionSchema(data)
	if err != nil {
		return err
	}
	app.permissionSchema.Merge(schema)
	return nil
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, ok := app.controllers[c.Key()]; !ok {
			app.controllerOrder = append(app.controllerOrder, c.Key())
		}
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterHashFsAssets(fs ...*hashfs.FS) {
	app.hashFsAssets = append(app.hashFsAssets, fs...)
}

func (app *application) RegisterAssets(fs ...*embed.FS) {
	app.assets = append(app.assets, fs...)
}

func (app *application) RegisterLocaleFiles(fs ...*embed.FS) {
	for _, localeFs := range fs {
		files, err := listFiles(localeFs, ".")
		if err != nil {
			panic(err)
		}
		for _, file := range files {
			localeFile, err := localeFs.ReadFile(file)
			if err != nil {
				panic(err)
			}
			app.bundle.MustParseMessageFileBytes(localeFile, filepath.Base(file))
		}
	}
}

// RegisterServices registers services by their pointer's element type.
func (app *application) RegisterServices(services ...interface{}) {
	app.mu.Lock()
	defer app.mu.Unlock()
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	app.mu.RLock()
	defer app.mu.RUnlock()
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}

func (app *application) Services() map[reflect.Type]interface{} {
	return app.services
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) GetSupportedLanguages() []string {
	return app.supportedLanguages
}
