package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kaloria/coach-hub/internal/activity"
	"github.com/kaloria/coach-hub/internal/auth"
	"github.com/kaloria/coach-hub/internal/blob"
	"github.com/kaloria/coach-hub/internal/coach"
	"github.com/kaloria/coach-hub/internal/config"
	"github.com/kaloria/coach-hub/internal/exercises"
	"github.com/kaloria/coach-hub/internal/foodlog"
	"github.com/kaloria/coach-hub/internal/foods"
	"github.com/kaloria/coach-hub/internal/gamification"
	"github.com/kaloria/coach-hub/internal/nutrition"
	"github.com/kaloria/coach-hub/internal/profiles"
	"github.com/kaloria/coach-hub/internal/storage"
	"github.com/kaloria/coach-hub/internal/storage/memory"
	"github.com/kaloria/coach-hub/internal/storage/postgres"
)

// Server wires storage, services and routes into one HTTP handler.
type Server struct {
	config         *config.Config
	logger         *zap.Logger
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New builds a fully wired server from the configuration.
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		logger: newLogger(cfg),
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

func newLogger(cfg *config.Config) *zap.Logger {
	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}

	var zapCfg zap.Config
	if cfg.Env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// initStorage selects Postgres when configured, memory otherwise. A
// failed Postgres connection falls back to memory so local development
// never needs a database.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		s.logger.Info("using in-memory storage")
		s.storage = memory.New()
		return
	}

	s.logger.Info("connecting to PostgreSQL")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		s.logger.Warn("PostgreSQL connection failed, falling back to in-memory storage", zap.Error(err))
		s.storage = memory.New()
		return
	}
	s.logger.Info("PostgreSQL connected")
	s.storage = pgStorage
}

// routes registers all endpoints.
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService, s.logger.Named("auth"))

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Profiles API
	profileService := profiles.NewService(s.storage)
	profileHandler := profiles.NewHandler(profileService)

	s.mux.HandleFunc("GET /v1/profiles", profileHandler.HandleList)
	s.mux.HandleFunc("POST /v1/profiles", profileHandler.HandleCreate)
	s.mux.HandleFunc("PATCH /v1/profiles/", profileHandler.HandleUpdate)
	s.mux.HandleFunc("DELETE /v1/profiles/", profileHandler.HandleDelete)

	// Nutrition Targets API
	nutritionService := nutrition.NewService(s.storage, s.getNutritionTargetsStorage())
	nutritionHandler := nutrition.NewHandler(nutritionService)

	s.mux.HandleFunc("GET /v1/nutrition/targets", nutritionHandler.HandleGetTargets)
	s.mux.HandleFunc("PUT /v1/nutrition/targets", nutritionHandler.HandleUpsertTargets)

	// Gamification engine, shared by foods and logs as the reward hook.
	gamificationService := gamification.NewService(
		s.getStatsStorage(),
		s.getAchievementsStorage(),
		s.logger.Named("gamification"),
	)
	gamificationHandler := gamification.NewHandler(gamificationService)

	s.mux.HandleFunc("GET /v1/gamification/stats", gamificationHandler.HandleGetStats)
	s.mux.HandleFunc("GET /v1/gamification/achievements", gamificationHandler.HandleListAchievements)

	// Foods API (user recipes, generic catalog, community contributions)
	profileAdapter := &profileStorageAdapter{storage: s.storage}
	blobStore := s.initBlobStore()
	foodsService := foods.NewService(
		s.getFoodsStorage(),
		s.getContributionsStorage(),
		profileAdapter,
		blobStore,
		s.config.UploadMaxMB,
		s.config.UploadAllowedMime,
		gamificationService,
		s.logger.Named("foods"),
	)
	foodsHandler := foods.NewHandler(foodsService)

	s.mux.HandleFunc("GET /v1/foods", foodsHandler.HandleListFoods)
	s.mux.HandleFunc("POST /v1/foods", foodsHandler.HandleCreateFood)
	s.mux.HandleFunc("GET /v1/foods/generic", foodsHandler.HandleListGeneric)
	s.mux.HandleFunc("GET /v1/foods/contributions", foodsHandler.HandleListContributions)
	s.mux.HandleFunc("POST /v1/foods/contributions", foodsHandler.HandleCreateContribution)
	s.mux.HandleFunc("POST /v1/foods/contributions/{id}/photo", foodsHandler.HandleUploadContributionPhoto)
	s.mux.HandleFunc("GET /v1/foods/contributions/{id}/photo", foodsHandler.HandleGetContributionPhoto)

	// Food Log API
	foodLogService := foodlog.NewService(
		s.getFoodLogStorage(),
		profileAdapter,
		gamificationService,
		s.logger.Named("foodlog"),
	)
	foodLogHandler := foodlog.NewHandler(foodLogService)

	s.mux.HandleFunc("POST /v1/logs", foodLogHandler.HandleCreateLog)
	s.mux.HandleFunc("GET /v1/logs/daily", foodLogHandler.HandleDaily)
	s.mux.HandleFunc("GET /v1/logs/history", foodLogHandler.HandleHistory)

	// Exercise catalog API
	exercisesService := exercises.NewService(s.getExercisesStorage())
	exercisesHandler := exercises.NewHandler(exercisesService)

	s.mux.HandleFunc("GET /v1/exercises", exercisesHandler.HandleList)

	// Activity API (calories burned)
	activityService := activity.NewService(s.getActivityStorage(), profileAdapter)
	activityHandler := activity.NewHandler(activityService)

	s.mux.HandleFunc("POST /v1/activity", activityHandler.HandleCreate)
	s.mux.HandleFunc("GET /v1/activity/daily", activityHandler.HandleDaily)

	// Smart Coach API
	coachEngine := coach.NewEngine(
		coach.NewStorageFoodCatalog(s.getFoodsStorage(), s.getFoodLogStorage()),
		coach.NewStorageExerciseCatalog(s.getExercisesStorage()),
		coach.EngineConfig{
			HistoryDays:        s.config.CoachHistoryDays,
			GenericSearchLimit: s.config.CoachGenericSearchLimit,
			Tracer:             coach.NewZapTracer(s.logger.Named("coach")),
		},
	)
	coachService := coach.NewService(
		s.storage,
		s.getNutritionTargetsStorage(),
		s.getFoodLogStorage(),
		s.getActivityStorage(),
		coachEngine,
	)
	coachHandler := coach.NewHandler(coachService)

	s.mux.HandleFunc("GET /v1/coach/recommendation", coachHandler.HandleRecommendation)
}

func (s *Server) getNutritionTargetsStorage() storage.NutritionTargetsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetNutritionTargetsStorage()
	case *postgres.PostgresStorage:
		return st.GetNutritionTargetsStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getFoodsStorage() storage.FoodsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetFoodsStorage()
	case *postgres.PostgresStorage:
		return st.GetFoodsStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getFoodLogStorage() storage.FoodLogStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetFoodLogStorage()
	case *postgres.PostgresStorage:
		return st.GetFoodLogStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getExercisesStorage() storage.ExercisesStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetExercisesStorage()
	case *postgres.PostgresStorage:
		return st.GetExercisesStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getActivityStorage() storage.ActivityStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetActivityStorage()
	case *postgres.PostgresStorage:
		return st.GetActivityStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getStatsStorage() storage.StatsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetStatsStorage()
	case *postgres.PostgresStorage:
		return st.GetStatsStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getAchievementsStorage() storage.AchievementsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetAchievementsStorage()
	case *postgres.PostgresStorage:
		return st.GetAchievementsStorage()
	default:
		panic("unsupported storage type")
	}
}

func (s *Server) getContributionsStorage() storage.ContributionsStorage {
	switch st := s.storage.(type) {
	case *memory.MemoryStorage:
		return st.GetContributionsStorage()
	case *postgres.PostgresStorage:
		return st.GetContributionsStorage()
	default:
		panic("unsupported storage type")
	}
}

// initBlobStore builds the contribution photo store. A nil store means
// local mode: photos are kept inline in the contributions storage.
func (s *Server) initBlobStore() blob.Store {
	store, mode, err := blob.NewBlobStore(s.config.Blob, zap.NewStdLog(s.logger.Named("blob")))
	if err != nil {
		s.logger.Fatal("blob store initialization failed", zap.Error(err))
	}
	s.logger.Info("blob store ready", zap.String("mode", mode))
	return store
}

// profileStorageAdapter exposes profile lookups to feature services.
type profileStorageAdapter struct {
	storage storage.Storage
}

func (p *profileStorageAdapter) GetProfile(ctx context.Context, id uuid.UUID) (*storage.Profile, error) {
	return p.storage.GetProfile(ctx, id)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start runs the server with the middleware chain
// CORS -> Rate Limit -> Auth -> Router.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		if s.config.AuthRequired {
			handler = s.authMiddleware.RequireAuth(handler)
		} else {
			handler = s.authMiddleware.OptionalAuth(handler)
		}
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Server listening on http://localhost%s", addr)
	log.Printf("Health check: http://localhost%s/healthz", addr)

	return http.ListenAndServe(addr, handler)
}

// Close releases storage resources.
func (s *Server) Close() error {
	if s.logger != nil {
		_ = s.logger.Sync()
	}
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
