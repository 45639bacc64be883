package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "cat-care-diary/internal/adapters/storage/memory"
	pg "cat-care-diary/internal/adapters/storage/postgres"
	"cat-care-diary/internal/domain/accounts"
	"cat-care-diary/internal/domain/cats"
	"cat-care-diary/internal/domain/media"
	"cat-care-diary/internal/domain/questions"
	"cat-care-diary/internal/domain/records"
	"cat-care-diary/internal/domain/triage"
	"cat-care-diary/internal/domain/vetvisits"
	"cat-care-diary/internal/metrics"
	"cat-care-diary/internal/middleware"
	"cat-care-diary/internal/platform/logger"
	"cat-care-diary/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Log          logger.Logger
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Banco de preguntas; nil => banco embebido.
	Bank *questions.Bank

	// Fotos; nil => store in-memory.
	PhotoStore media.Store

	// Identity provider para las rutas /auth; nil => 503.
	IdentityAdmin accounts.IdentityAdmin

	// Métricas; nil => sin /metrics ni instrumentación.
	Metrics *metrics.Metrics
}

func New(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	var (
		catsRepo    cats.Repository
		recordsRepo records.Repository
		visitsRepo  vetvisits.Repository
		snapshots   triage.SnapshotRepo
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, falling back to memory", map[string]any{
					"err": err.Error(),
				})
			}
		}
	}

	if db != nil {
		catsRepo = pg.NewCatsRepo(db)
		recordsRepo = pg.NewRecordsRepo(db)
		visitsRepo = pg.NewVisitsRepo(db)
		snapshots = pg.NewSnapshotsRepo(db)
	} else {
		catsRepo = mem.NewCatsRepo()
		recordsRepo = mem.NewRecordsRepo()
		visitsRepo = mem.NewVisitsRepo()
		snapshots = mem.NewSnapshotsRepo()
	}

	bank := opts.Bank
	if bank == nil {
		bank = questions.NewBank(questions.NewStaticSource(), log)
	}

	photos := opts.PhotoStore
	if photos == nil {
		photos = media.NewMemoryStore()
	}

	// Services por módulo
	catsSvc := cats.NewService(catsRepo)
	recordsSvc := records.NewService(recordsRepo)
	visitsSvc := vetvisits.NewService(visitsRepo)
	triageSvc := triage.NewService(bank, snapshots, log)
	accountsSvc := accounts.NewService(opts.IdentityAdmin)

	// Rutas por módulo
	cats.RegisterRoutes(r, catsSvc, triageSvc)
	questions.RegisterRoutes(r, bank, catsSvc, log)
	triage.RegisterRoutes(r, triageSvc, catsSvc)
	records.RegisterRoutes(r, recordsSvc, catsSvc)
	vetvisits.RegisterRoutes(r, visitsSvc, catsSvc)
	media.RegisterRoutes(r, photos, catsSvc, log)
	accounts.RegisterRoutes(r, accountsSvc, log)

	return r
}
