package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type startConversationRequest struct {
	Subject *string `json:"subject"`
}

type postMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (s *Server) handleStartConversation(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	conversation, err := s.chat.StartConversation(c.Request.Context(), currentUserID(c), req.Subject)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, conversation)
}

func (s *Server) handleListConversations(c *gin.Context) {
	conversations, err := s.chat.ListConversationsForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (s *Server) handleListMessages(c *gin.Context) {
	messages, err := s.chat.ListMessages(c.Request.Context(), c.Param("conversationId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (s *Server) handlePostMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "message is required")
		return
	}

	message, err := s.chat.PostMessage(c.Request.Context(), c.Param("conversationId"), currentUserID(c), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}
