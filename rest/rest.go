package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"cardroom.com/server/game"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()

// Server is the HTTP front of the game manager.
type Server struct {
	manager *game.Manager
	limiter *rate.Limiter
}

func NewServer(manager *game.Manager) *Server {
	return &Server{
		manager: manager,
		limiter: rate.NewLimiter(rate.Limit(100), 200),
	}
}

// Run blocks serving the REST API on the given port.
func (s *Server) Run(portNo int) error {
	r := gin.Default()
	r.Use(s.rateLimit)
	r.GET("/ready", s.checkReady)
	r.POST("/new-hand", s.newHand)
	r.POST("/action", s.handleAction)
	r.GET("/current-hand", s.currentHand)
	restLogger.Info().Int("port", portNo).Msg("REST server starting")
	return r.Run(fmt.Sprintf(":%d", portNo))
}

func (s *Server) rateLimit(c *gin.Context) {
	if !s.limiter.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		return
	}
	c.Next()
}

func (s *Server) checkReady(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

type newHandPayload struct {
	Config  *game.RoomConfig `json:"config" binding:"required"`
	Players []*game.Player   `json:"players"`
}

func (s *Server) newHand(c *gin.Context) {
	var payload newHandPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.Config.GameCode == "" {
		payload.Config.GameCode = uuid.NewString()
	}

	record, err := s.manager.NewHand(payload.Config, payload.Players)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}

type actionPayload struct {
	GameCode  string          `json:"gameCode" binding:"required"`
	ActionID  string          `json:"actionId"`
	SeatNo    uint32          `json:"seatNo"`
	Action    string          `json:"action" binding:"required"`
	Amount    int64           `json:"amount"`
	Partition *game.Partition `json:"partition"`
}

func (s *Server) handleAction(c *gin.Context) {
	var payload actionPayload
	if err := c.BindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action := game.ParseACTION(payload.Action)
	if action == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unknown action %s", payload.Action)})
		return
	}
	if payload.ActionID == "" {
		payload.ActionID = uuid.NewString()
	}

	input := game.ActionInput{
		SeatNo:    payload.SeatNo,
		Action:    action,
		Amount:    payload.Amount,
		Partition: payload.Partition,
	}
	result, err := s.manager.HandleAction(payload.GameCode, payload.ActionID, input)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	// turn and validation rejections are client-visible data, not transport
	// failures
	c.JSON(http.StatusOK, result)
}

func (s *Server) currentHand(c *gin.Context) {
	gameCode := c.Query("game-code")
	if gameCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read game-code param from the request"})
		return
	}
	record, err := s.manager.CurrentHand(gameCode)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, record)
}
