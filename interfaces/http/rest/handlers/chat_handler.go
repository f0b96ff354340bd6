package handlers

import (
	"fmt"
	"net/http"

	"chatrelay/application/services"
	"chatrelay/domain/chat"
	"chatrelay/pkg/common"
	apperrors "chatrelay/pkg/errors"
	"chatrelay/pkg/utils"

	"go.uber.org/zap"
)

// ChatHandler handles the browser-facing chat endpoints. The surface is
// deliberately plain: query parameters in, text/plain out, with in-band
// markers the UI interprets.
type ChatHandler struct {
	chatService *services.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService *services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// chatParams are the request parameters shared by the chat and mock
// endpoints.
type chatParams struct {
	Name   string `validate:"required,min=1,max=100"`
	Email  string `validate:"required,email"`
	Prompt string `validate:"required"`
}

// parseChatParams extracts the parameters from the query string. The
// capitalized variants are accepted for compatibility with older clients.
func parseChatParams(r *http.Request) chatParams {
	q := r.URL.Query()
	pick := func(keys ...string) string {
		for _, key := range keys {
			if v := q.Get(key); v != "" {
				return v
			}
		}
		return ""
	}
	return chatParams{
		Name:   pick("name", "Name"),
		Email:  pick("email", "Email"),
		Prompt: pick("prompt", "Prompt"),
	}
}

// Chat handles GET|POST /chat: relays the prompt to the assistant and
// returns the reply text.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	params := parseChatParams(r)
	if err := utils.ValidateStruct(params); err != nil {
		common.RespondText(w, http.StatusBadRequest,
			fmt.Sprintf("An error has occurred: %v", err))
		return
	}

	reply, err := h.chatService.Chat(r.Context(), services.ChatRequest{
		Name:   params.Name,
		Email:  params.Email,
		Prompt: params.Prompt,
	})
	if err != nil {
		status := apperrors.HTTPStatusOf(err)
		if status == http.StatusBadRequest {
			common.RespondText(w, status, fmt.Sprintf("An error has occurred: %v", err))
			return
		}

		// Failures past validation are surfaced in-band so the UI can
		// render them inside the transcript.
		message := err.Error()
		if appErr, ok := apperrors.GetAppError(err); ok {
			message = appErr.Message
		}
		common.RespondText(w, status, chat.IssueReply(message))
		return
	}

	common.RespondText(w, http.StatusOK, reply)
}

// Mock handles GET|POST /mock: validates the parameter contract and
// returns a canned greeting without contacting the assistant.
func (h *ChatHandler) Mock(w http.ResponseWriter, r *http.Request) {
	params := parseChatParams(r)
	if err := utils.ValidateStruct(params); err != nil {
		common.RespondText(w, http.StatusBadRequest,
			fmt.Sprintf("An error has occurred: %v", err))
		return
	}

	common.RespondText(w, http.StatusOK,
		fmt.Sprintf("Hello, %s! So you like to talk about %s", params.Name, params.Prompt))
}

// Ping handles GET /ping.
func (h *ChatHandler) Ping(w http.ResponseWriter, r *http.Request) {
	common.RespondText(w, http.StatusOK, "pong")
}

// Status handles GET /status: reports the health of the assistant backend
// and the thread store.
func (h *ChatHandler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.chatService.CheckStatus(r.Context())
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"chat_service": status,
	})
}
