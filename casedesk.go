package casedesk

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/casedesk/casedesk/api/caseapi"
	"github.com/casedesk/casedesk/storage/model"
)

// APIBasePath is the path the case API is mounted at
const APIBasePath = "/api/v1"

// CaseDesk is the http server of the case tracker
type CaseDesk struct {
	server     *fiber.App
	serverConf ServerConf
}

// FiberServerConfig is the fiber.Config that is used to init the http fiber.App
var FiberServerConfig = fiber.Config{
	ReadTimeout:    10 * time.Second,
	WriteTimeout:   60 * time.Second,
	IdleTimeout:    150 * time.Second,
	ReadBufferSize: 8192,
	BodyLimit:      32 * 1024 * 1024,
	UnescapePath:   true,
	ErrorHandler:   handleError,
	Network:        "tcp",
}

// handleError answers errors that were not handled by a route, e.g. unknown
// paths, in the same format as the API errors
func handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		code = fiberError.Code
	}
	errCode := caseapi.ErrorCodeServerError
	switch {
	case code == fiber.StatusNotFound:
		errCode = caseapi.ErrorCodeNotFound
	case code < fiber.StatusInternalServerError:
		errCode = caseapi.ErrorCodeInvalidRequest
	default:
		log.WithError(err).Error("unhandled error")
	}
	return ctx.Status(code).JSON(
		caseapi.ErrorResponse{
			Error:            errCode,
			ErrorDescription: err.Error(),
		},
	)
}

// NewCaseDesk creates a new CaseDesk serving the case API from the passed
// backends
func NewCaseDesk(serverConf ServerConf, storages model.Backends, apiOpts *caseapi.Options) *CaseDesk {
	conf := FiberServerConfig
	if tps := serverConf.TrustedProxies; len(tps) > 0 {
		conf.TrustedProxies = serverConf.TrustedProxies
		conf.EnableTrustedProxyCheck = true
	}
	conf.ProxyHeader = serverConf.ForwardedIPHeader
	serverConf.Timeouts.apply(&conf)
	server := fiber.New(conf)
	server.Use(recover.New())
	server.Use(compress.New())
	server.Use(logger.New(logger.Config{Output: serverConf.AccessLog}))
	server.Use(requestid.New())

	caseapi.Register(server.Group(APIBasePath), storages, apiOpts)
	return &CaseDesk{
		server:     server,
		serverConf: serverConf,
	}
}

// App returns the underlying fiber.App
func (cd CaseDesk) App() *fiber.App {
	return cd.server
}

// HttpHandlerFunc returns an http.HandlerFunc for serving all the necessary endpoints
func (cd CaseDesk) HttpHandlerFunc() http.HandlerFunc {
	return adaptor.FiberApp(cd.server)
}

// Listen starts an http server at the specific address for serving all the
// necessary endpoints
func (cd CaseDesk) Listen(addr string) error {
	return cd.server.Listen(addr)
}

// Shutdown stops the server, waiting for open requests to finish
func (cd CaseDesk) Shutdown() error {
	return cd.server.Shutdown()
}

// Start starts the server as configured and blocks until it stops
func (cd CaseDesk) Start() error {
	conf := cd.serverConf
	if !conf.TLS.Enabled {
		addr := fmt.Sprintf("%s:%d", conf.IPListen, conf.Port)
		log.WithField("addr", addr).Info("TLS is disabled starting http server")
		return cd.server.Listen(addr)
	}
	if conf.TLS.RedirectHTTP {
		httpServer := fiber.New(FiberServerConfig)
		httpServer.All(
			"*", func(ctx *fiber.Ctx) error {
				//goland:noinspection HttpUrlsUsage
				return ctx.Redirect(
					strings.Replace(ctx.Request().URI().String(), "http://", "https://", 1),
					fiber.StatusPermanentRedirect,
				)
			},
		)
		log.Info("TLS and http redirect enabled, starting redirect server on port 80")
		go func() {
			log.WithError(httpServer.Listen(fmt.Sprintf("%s:80", conf.IPListen))).Error("redirect server stopped")
		}()
	}
	addr := fmt.Sprintf("%s:443", conf.IPListen)
	log.WithField("addr", addr).Info("TLS enabled, starting https server")
	return cd.server.ListenTLS(addr, conf.TLS.Cert, conf.TLS.Key)
}
