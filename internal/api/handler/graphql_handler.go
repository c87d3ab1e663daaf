package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graphql/internal/gql"
	"github.com/d60-Lab/social-graphql/pkg/response"
)

type Handler struct {
	pipeline *gql.Pipeline
}

func NewHandler(pipeline *gql.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

type gqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// GraphQL executes one query document
// @Summary Execute a GraphQL request
// @Tags graphql
// @Accept json
// @Produce json
// @Param request body handler.gqlRequest true "query document and variables"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Router /graphql [post]
func (h *Handler) GraphQL(c *gin.Context) {
	var req gqlRequest
	dec := json.NewDecoder(c.Request.Body)
	// body shape is {query, variables} and nothing else
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if req.Query == "" {
		response.BadRequest(c, "query is required")
		return
	}

	result := h.pipeline.Run(c.Request.Context(), req.Query, req.Variables)
	c.JSON(http.StatusOK, result)
}

// Health reports liveness
// @Summary Liveness probe
// @Tags ops
// @Produce json
// @Success 200 {object} response.Response
// @Router /healthz [get]
func (h *Handler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "up"})
}
