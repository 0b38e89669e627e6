package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formify-go/internal/application"
	"github.com/linskybing/formify-go/internal/domain/form"
)

type GenerateResponse struct {
	Form   *form.Form `json:"form"`
	Source string     `json:"source" example:"ai"`
}

type ChatInput struct {
	Message string `json:"message" binding:"required,max=4000"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

type AssistantHandler struct {
	generator *application.GeneratorService
	chat      *application.ChatService
}

func NewAssistantHandler(generator *application.GeneratorService, chat *application.ChatService) *AssistantHandler {
	return &AssistantHandler{generator: generator, chat: chat}
}

// GenerateForm godoc
// @Summary Draft a form from a description
// @Description The draft is saved immediately. Source is "template" when no
// @Description model was available and a built-in template was used.
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body form.GenerateFormDTO true "Description"
// @Success 201 {object} GenerateResponse
// @Failure 400 {object} response.ErrorResponse
// @Router /forms/generate [post]
func (h *AssistantHandler) GenerateForm(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var input form.GenerateFormDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, formLabels)
		return
	}

	f, source, err := h.generator.Generate(c.Request.Context(), p, input.Prompt)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, GenerateResponse{Form: f, Source: source})
}

// Chat godoc
// @Summary Ask the form-building assistant
// @Tags assistant
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param input body ChatInput true "Message"
// @Success 200 {object} ChatResponse
// @Router /chat [post]
func (h *AssistantHandler) Chat(c *gin.Context) {
	var input ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err, map[string]string{"Message": "message"})
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Response: h.chat.Reply(c.Request.Context(), input.Message)})
}
