package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaConsole/internal/modules/realtime/domain"
	"mesaYaConsole/internal/modules/realtime/infrastructure"
	"mesaYaConsole/internal/shared/auth"
	"mesaYaConsole/internal/shared/normalization"
)

// The console is served from the same origin in production, but local
// development runs the UI from another port.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const sendBuffer = 8

// NewWebsocketHandler serves /ws/console. Without ?entities= the client gets
// every reload notice; otherwise only those of the listed entities
// (e.g. ?entities=mesas,reservas). The token is used only to label the client.
func NewWebsocketHandler(hub *infrastructure.Hub) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		entities, ok := parseEntities(c.QueryParam("entities"))
		if !ok {
			slog.Warn("ws rejected: unknown entity", slog.String("entities", c.QueryParam("entities")), slog.String("ip", peerIP), slog.String("requestId", requestID))
			return echo.NewHTTPError(http.StatusBadRequest, "entidad desconocida")
		}

		token := strings.TrimSpace(c.QueryParam("token"))
		if token == "" {
			token = auth.ExtractBearerToken(c.Request())
		}
		actor := auth.Actor(token)

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("ws upgrade failed", slog.String("ip", peerIP), slog.String("requestId", requestID), slog.Any("error", err))
			return nil
		}

		sessionID := uuid.NewString()
		client := infrastructure.NewClient(hub, conn, actor, sessionID, sendBuffer)
		if len(entities) == 0 {
			hub.AttachClientToAll(client)
		} else {
			hub.AttachClient(client, entities)
		}

		go client.WritePump()
		go client.ReadPump()

		subscribed := entities
		if len(subscribed) == 0 {
			subscribed = normalization.GetAllValidEntities()
		}
		client.SendDomainMessage(&domain.Message{
			Topic:     domain.TopicSystemConnected,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionConnected,
			Metadata:  map[string]string{"sessionId": sessionID, "actor": actor},
			Data:      map[string]any{"entities": subscribed},
			Timestamp: time.Now().UTC(),
		})

		slog.Info("ws connected", slog.String("actor", actor), slog.String("sessionId", sessionID), slog.Any("entities", subscribed), slog.String("ip", peerIP), slog.String("requestId", requestID))
		return nil
	}
}

// parseEntities canonicalizes a comma separated entity list. Any unknown entry
// rejects the whole list.
func parseEntities(raw string) ([]string, bool) {
	var entities []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !normalization.IsValidEntity(part) {
			return nil, false
		}
		entity := normalization.NormalizeEntity(part)
		if _, dup := seen[entity]; dup {
			continue
		}
		seen[entity] = struct{}{}
		entities = append(entities, entity)
	}
	return entities, true
}
