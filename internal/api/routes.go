package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"txn-decision-engine/internal/decision"
	"txn-decision-engine/internal/memory"
	"txn-decision-engine/internal/notify"
	"txn-decision-engine/internal/pipeline"
	"txn-decision-engine/internal/scoring"
	"txn-decision-engine/internal/store"
	"txn-decision-engine/pkg/types"
)

// Config defines server dependencies.
type Config struct {
	DBPath         string
	SnapshotPath   string
	AllowedOrigins []string
	SilentDB       bool
	Mirror         notify.Config
}

// Server wires HTTP handlers with the decision pipeline and persistence.
type Server struct {
	db             *store.Database
	engine         *pipeline.Engine
	streamNotifier *DecisionNotifier
	allowedOrigins []string
	dbPath         string
	snapshotPath   string
	mirrorEnabled  bool
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	if cfg.SnapshotPath == "" {
		return nil, errors.New("memory snapshot path required")
	}

	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	memStore, err := memory.NewStore(cfg.SnapshotPath)
	if err != nil {
		return nil, fmt.Errorf("memory store: %w", err)
	}

	var notifier notify.Notifier
	mirrorEnabled := false
	if client, err := notify.NewClient(cfg.Mirror); err == nil {
		notifier = client
		mirrorEnabled = true
		logrus.WithField("url", cfg.Mirror.BaseURL).Info("mirror notifier enabled")
	} else if errors.Is(err, notify.ErrDisabled) {
		notifier = notify.Disabled{}
		logrus.Info("mirror notifier disabled - no endpoint configured")
	} else {
		return nil, fmt.Errorf("mirror notifier: %w", err)
	}

	model := scoring.NewModel(notifier)
	engine := pipeline.New(decision.NewOrchestrator(), model, memStore, notifier)

	return &Server{
		db:             db,
		engine:         engine,
		streamNotifier: NewDecisionNotifier(),
		allowedOrigins: cfg.AllowedOrigins,
		dbPath:         cfg.DBPath,
		snapshotPath:   cfg.SnapshotPath,
		mirrorEnabled:  mirrorEnabled,
	}, nil
}

// Close releases server resources.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logrus.WithField("panic", recovered).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":  false,
			"decision": "ERROR",
			"error":    "internal failure while processing request",
		})
	}))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.POST("/process", s.handleProcess)
		api.POST("/outcome", s.handleOutcome)
		api.GET("/decisions", s.handleDecisions)
		api.GET("/export.csv", s.handleExportCSV)
		api.GET("/export.json", s.handleExportJSON)
		api.GET("/stream", s.handleStream)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	total, err := s.db.CountDecisions()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"db_path":        s.dbPath,
		"snapshot_path":  s.snapshotPath,
		"decisions":      total,
		"mirror_enabled": s.mirrorEnabled,
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	requestID := strings.TrimSpace(req.RequestID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	// Payload size is measured once here; the security evaluator reads it.
	if encoded, err := json.Marshal(req.Transaction); err == nil {
		req.Transaction.RawSize = len(encoded)
	}

	resp := s.engine.Process(pipeline.Request{
		RequestID:     requestID,
		Payload:       req.Transaction,
		Context:       req.Context,
		PriorConcerns: req.PriorConcerns,
	})

	if resp.Success && resp.Data != nil {
		s.recordDecision(requestID, req.Transaction, resp.Data)
		s.streamNotifier.Broadcast(DecisionEvent{
			Type:            "decision",
			RequestID:       requestID,
			Decision:        string(resp.Data.Decision),
			RiskLevel:       string(resp.Data.RiskLevel),
			RiskScore:       resp.Data.RiskScore,
			InventorySignal: string(resp.Data.InventorySignal),
		})
	} else {
		s.streamNotifier.Broadcast(DecisionEvent{
			Type:      "blocked",
			RequestID: requestID,
			Decision:  string(types.DecisionBlocked),
		})
	}

	c.JSON(http.StatusOK, ProcessResponse{RequestID: requestID, Response: *resp})
}

// recordDecision appends the run to the history store. Best-effort: a
// storage failure never alters the response.
func (s *Server) recordDecision(requestID string, payload types.Payload, result *types.Result) {
	record := &store.DecisionRecord{
		RequestID:        requestID,
		Role:             result.Context.Role,
		SystemState:      result.Context.SystemState,
		Decision:         string(result.Decision),
		RiskLevel:        string(result.RiskLevel),
		RiskScore:        result.RiskScore,
		FraudScore:       result.FraudScore.Score,
		Amount:           payload.Amount,
		Currency:         payload.Currency,
		InventorySignal:  string(result.InventorySignal),
		ProcessingTimeMs: result.ProcessingMs,
	}
	record.SetConcerns(result.Concerns)
	record.SetRecommendations(result.Recommendations)
	if err := s.db.SaveDecision(record); err != nil {
		logrus.WithError(err).WithField("request_id", requestID).Warn("record decision history")
	}
}

func (s *Server) handleOutcome(c *gin.Context) {
	var req OutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.RequestID) == "" {
		s.renderError(c, http.StatusBadRequest, errors.New("request_id is required"))
		return
	}
	outcome, ok := types.ParseOutcome(req.Outcome)
	if !ok {
		s.renderError(c, http.StatusBadRequest, fmt.Errorf("invalid outcome: %s", req.Outcome))
		return
	}

	s.engine.SubmitOutcome(strings.TrimSpace(req.RequestID), outcome)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

func (s *Server) handleDecisions(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	if pageSize <= 0 {
		pageSize = 100
	}
	minScore, _ := strconv.Atoi(c.Query("minScore"))

	rows, total, err := s.db.ListDecisions(store.DecisionQuery{
		RequestID: strings.TrimSpace(c.Query("request_id")),
		Decision:  strings.TrimSpace(c.Query("decision")),
		RiskLevel: strings.TrimSpace(c.Query("risk_level")),
		Role:      strings.TrimSpace(c.Query("role")),
		MinScore:  minScore,
		Offset:    page * pageSize,
		Limit:     pageSize,
	})
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]DecisionDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromModel(row))
	}
	c.JSON(http.StatusOK, DecisionsResponse{Items: dtos, Total: total})
}

func (s *Server) handleExportCSV(c *gin.Context) {
	rows, _, err := s.db.ListDecisions(store.DecisionQuery{Limit: -1})
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=decision-history.csv")
	c.Header("Content-Type", "text/csv")

	writer := csv.NewWriter(c.Writer)
	headers := []string{"request_id", "role", "system_state", "decision", "risk_level", "risk_score", "fraud_score", "amount", "currency", "concerns", "recommendations", "inventory_signal", "processing_time_ms", "created_at"}
	if err := writer.Write(headers); err != nil {
		return
	}
	for _, row := range rows {
		dto := FromModel(row)
		line := []string{
			dto.RequestID,
			dto.Role,
			dto.SystemState,
			dto.Decision,
			dto.RiskLevel,
			strconv.Itoa(dto.RiskScore),
			strconv.Itoa(dto.FraudScore),
			fmt.Sprintf("%.2f", dto.Amount),
			dto.Currency,
			strings.Join(dto.Concerns, "|"),
			strings.Join(dto.Recommendations, "|"),
			dto.InventorySignal,
			strconv.FormatInt(dto.ProcessingMs, 10),
			dto.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(line); err != nil {
			return
		}
	}
	writer.Flush()
}

func (s *Server) handleExportJSON(c *gin.Context) {
	rows, _, err := s.db.ListDecisions(store.DecisionQuery{Limit: -1})
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	dtos := make([]DecisionDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, FromModel(row))
	}
	c.Header("Content-Disposition", "attachment; filename=decision-history.json")
	c.JSON(http.StatusOK, dtos)
}

func (s *Server) handleStream(c *gin.Context) {
	upgrader := websocket.Upgrader{
		HandshakeTimeout:  5 * time.Second,
		EnableCompression: true,
		CheckOrigin: func(r *http.Request) bool {
			if len(s.allowedOrigins) == 0 {
				return true
			}
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			for _, allowed := range s.allowedOrigins {
				if strings.EqualFold(origin, allowed) {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("upgrade websocket")
		return
	}

	client := s.streamNotifier.Register(conn)
	logrus.WithField("remote", conn.RemoteAddr().String()).Info("decision stream connected")
	defer s.streamNotifier.Unregister(client)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("remote", conn.RemoteAddr().String()).Info("decision stream closed")
			} else {
				logrus.WithError(err).Warn("decision stream unexpected close")
			}
			break
		}
	}
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
