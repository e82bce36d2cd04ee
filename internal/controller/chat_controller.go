package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"crackit_backend/internal/middleware"
	"crackit_backend/internal/service"
	"crackit_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Service *service.ChatService
}

func NewChatController(svc *service.ChatService) *ChatController {
	return &ChatController{Service: svc}
}

type AskRequest struct {
	Message        string `json:"message" binding:"required"`
	ConversationID string `json:"conversation_id"`
}

// @Summary Ask the study assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AskRequest true "message and optional conversation id"
// @Success 200 {object} util.Response
// @Router /api/chat [post]
func (c *ChatController) Ask(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	reply, err := c.Service.Ask(ctx.Request.Context(), middleware.CurrentUserID(ctx), req.ConversationID, req.Message)
	if err != nil {
		util.InternalError(ctx, err.Error())
		return
	}
	util.Success(ctx, reply)
}

// @Summary List recent assistant conversations
// @Tags assistant
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/chat/history [get]
func (c *ChatController) History(ctx *gin.Context) {
	summaries, err := c.Service.History(middleware.CurrentUserID(ctx))
	if err != nil {
		util.InternalError(ctx, "failed to load chat history")
		return
	}
	util.Success(ctx, summaries)
}

// @Summary Ask the study assistant with a streamed reply
// @Tags assistant
// @Accept json
// @Produce text/event-stream
// @Security BearerAuth
// @Param body body AskRequest true "message and optional conversation id"
// @Success 200 {string} string "SSE stream of reply chunks"
// @Router /api/chat/stream [post]
func (c *ChatController) AskStream(ctx *gin.Context) {
	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	flusher, _ := ctx.Writer.(http.Flusher)
	send := func(chunk string) error {
		data, err := json.Marshal(gin.H{"content": chunk})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(ctx.Writer, "data: %s\n\n", data); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	reply, err := c.Service.AskStream(ctx.Request.Context(), middleware.CurrentUserID(ctx), req.ConversationID, req.Message, send)
	if err != nil {
		fmt.Fprintf(ctx.Writer, "data: %s\n\n", `{"error":"stream failed"}`)
		if flusher != nil {
			flusher.Flush()
		}
		return
	}

	final, _ := json.Marshal(gin.H{"conversation_id": reply.ConversationID, "done": true})
	fmt.Fprintf(ctx.Writer, "data: %s\n\n", final)
	fmt.Fprint(ctx.Writer, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

type SaveHistoryRequest struct {
	User string `json:"user" binding:"required"`
	AI   string `json:"ai" binding:"required"`
}

// @Summary Save a completed exchange as a new conversation
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SaveHistoryRequest true "user message and assistant reply"
// @Success 201 {object} util.Response
// @Router /api/chat/history [post]
func (c *ChatController) SaveHistory(ctx *gin.Context) {
	var req SaveHistoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conv, err := c.Service.SaveTurn(middleware.CurrentUserID(ctx), req.User, req.AI)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, gin.H{"conversation_id": conv.ConversationID})
}

// @Summary Get one conversation's messages
// @Tags assistant
// @Produce json
// @Security BearerAuth
// @Param id path string true "conversation id"
// @Success 200 {object} util.Response
// @Router /api/chat/{id} [get]
func (c *ChatController) Conversation(ctx *gin.Context) {
	conv, err := c.Service.Conversation(middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrConversationNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.InternalError(ctx, "failed to load conversation")
		return
	}
	util.Success(ctx, conv)
}

// @Summary Delete a conversation
// @Tags assistant
// @Produce json
// @Security BearerAuth
// @Param id path string true "conversation id"
// @Success 200 {object} util.Response
// @Router /api/chat/{id} [delete]
func (c *ChatController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteConversation(middleware.CurrentUserID(ctx), ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrConversationNotFound) {
			util.NotFound(ctx, err.Error())
			return
		}
		util.InternalError(ctx, "failed to delete conversation")
		return
	}
	util.Success(ctx, gin.H{"success": true})
}
