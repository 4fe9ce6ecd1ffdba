package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	attachmentapp "github.com/twaiba/faithful-registry/internal/application/attachment"
	authapp "github.com/twaiba/faithful-registry/internal/application/auth"
	faithfulapp "github.com/twaiba/faithful-registry/internal/application/faithful"
	householdapp "github.com/twaiba/faithful-registry/internal/application/household"
	imamapp "github.com/twaiba/faithful-registry/internal/application/imam"
	"github.com/twaiba/faithful-registry/internal/application/importer"
	mosqueapp "github.com/twaiba/faithful-registry/internal/application/mosque"
	"github.com/twaiba/faithful-registry/internal/config"
	"github.com/twaiba/faithful-registry/internal/infrastructure/cache"
	"github.com/twaiba/faithful-registry/internal/infrastructure/email"
	"github.com/twaiba/faithful-registry/internal/infrastructure/file"
	"github.com/twaiba/faithful-registry/internal/infrastructure/repository"
	"github.com/twaiba/faithful-registry/internal/infrastructure/token"
	httpecho "github.com/twaiba/faithful-registry/internal/interfaces/http/echo"
)

// Dependencies are the process-lifetime resources the server composes over.
type Dependencies struct {
	DB     *gorm.DB
	Pool   *pgxpool.Pool
	Codes  *cache.TTLStore
	Files  *file.LocalStore
	Sender email.Sender
}

// NewHTTPServer wires repositories, services and handlers onto an echo
// instance.
func NewHTTPServer(cfg *config.Config, deps Dependencies) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	faithfulRepo := repository.NewFaithfulRepository(deps.DB)
	householdRepo := repository.NewHouseholdRepository(deps.DB)
	mosqueRepo := repository.NewMosqueRepository(deps.DB)
	imamRepo := repository.NewImamRepository(deps.DB)
	accountRepo := repository.NewAccountRepository(deps.DB)

	saver := attachmentapp.NewSaver(deps.Files, int(cfg.Files.MaxUploadSize))

	faithfulSvc := faithfulapp.NewService(faithfulRepo)
	householdSvc := householdapp.NewService(householdRepo)
	mosqueSvc := mosqueapp.NewService(mosqueRepo)
	imamSvc := imamapp.NewService(imamRepo, faithfulRepo, mosqueRepo, saver)

	tokens := token.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL)
	authSvc := authapp.NewService(deps.Codes, accountRepo, deps.Sender, tokens, authapp.Config{
		OTPTTL:       cfg.Auth.OTPTTL,
		OTPCooldown:  cfg.Auth.OTPCooldown,
		ResetTTL:     cfg.Auth.ResetTTL,
		From:         cfg.Email.From,
		ResetBaseURL: cfg.Auth.ResetBaseURL,
	})

	reconciler := importer.New(deps.Files)
	targets := map[string]importer.Target{
		"faithful": faithfulapp.NewImportTarget(
			repository.NewFaithfulImportRepository(deps.Pool),
			accountRepo,
			authapp.HashPassword,
		),
		"household": householdapp.NewImportTarget(repository.NewHouseholdImportRepository(deps.Pool)),
		"mosque":    mosqueapp.NewImportTarget(repository.NewMosqueImportRepository(deps.Pool)),
		"imam":      imamapp.NewImportTarget(repository.NewImamImportRepository(deps.Pool)),
	}

	httpecho.RegisterRoutes(server, httpecho.Handlers{
		Faithful:   httpecho.NewFaithfulHandler(faithfulSvc),
		Households: httpecho.NewHouseholdHandler(householdSvc),
		Mosques:    httpecho.NewMosqueHandler(mosqueSvc),
		Imams:      httpecho.NewImamHandler(imamSvc),
		Auth:       httpecho.NewAuthHandler(authSvc),
		Imports:    httpecho.NewImportHandler(reconciler, targets),
		Files:      httpecho.NewFilesHandler(deps.Files),
		Guard:      httpecho.RequireAuth(tokens),
	})

	server.Static("/files", cfg.Files.BaseDir+"/files")

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	return server
}
