package handlers

import (
	"context"
	"net/http"
	"strconv"

	"project-tracker/internal/audit"
	"project-tracker/internal/database"
	"project-tracker/internal/models"
	"project-tracker/internal/notify"
	"project-tracker/internal/profit"
	"project-tracker/internal/shares"

	"github.com/gin-gonic/gin"
)

// profitDistributor and stakeholderStatsSource are what the handlers
// need from the profit engine and the store; tests stand in fakes.
type profitDistributor interface {
	DistributeProfits(ctx context.Context, userID uint) ([]profit.Report, error)
}

type stakeholderStatsSource interface {
	StakeholderStats(ctx context.Context, userID uint) (database.StakeholderStats, error)
}

var (
	store     *database.Store
	recorder  *audit.Recorder
	emitter   *notify.Emitter
	engine    profitDistributor
	stats     stakeholderStatsSource
	validator *shares.Validator
)

// Init wires the handler package to its collaborators. Called once from
// server.NewRouter after the DB is up.
func Init(s *database.Store) {
	store = s
	recorder = audit.NewRecorder(s)
	emitter = notify.NewEmitter(s)
	engine = profit.NewEngine(s)
	stats = s
	validator = shares.NewValidator(s)
}

// currentActorID resolves the audit actor from the session user placed
// by middleware.InjectUser. Mutations without a resolvable user are
// attributed to "unknown".
func currentActorID(c *gin.Context) string {
	if uVal, ok := c.Get("CurrentUser"); ok {
		if u, ok := uVal.(models.User); ok {
			return strconv.FormatUint(uint64(u.ID), 10)
		}
	}
	return models.UnknownActor
}

// queryUserID parses the mandatory userId query parameter and writes
// the 400 response itself when it is missing or malformed.
func queryUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Query("userId"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or missing userId"})
		return 0, false
	}
	return uint(id), true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
