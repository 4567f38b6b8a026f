package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cloo-solutions/veriflow/internal/api"
)

type GenerationService interface {
	GenerateTestPlan(ctx context.Context, prompt string) (string, error)
	GenerateScript(ctx context.Context, testCase string) (string, error)
}

type GenerationHandler struct {
	svc GenerationService
}

func NewGenerationHandler(svc GenerationService) *GenerationHandler {
	return &GenerationHandler{svc: svc}
}

type GenerateTestCasesRequest struct {
	Prompt string `json:"prompt"`
}

type GenerateTestCasesResponse struct {
	Status   string `json:"status"`
	TestPlan string `json:"test_plan"`
}

type GenerateScriptRequest struct {
	TestCase string `json:"test_case"`
}

type GenerateScriptResponse struct {
	Status string `json:"status"`
	Script string `json:"script"`
}

func (h *GenerationHandler) GenerateTestCases(w http.ResponseWriter, r *http.Request) {
	var req GenerateTestCasesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	plan, err := h.svc.GenerateTestPlan(r.Context(), req.Prompt)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, GenerateTestCasesResponse{
		Status:   "success",
		TestPlan: plan,
	})
}

func (h *GenerationHandler) GenerateSeleniumScript(w http.ResponseWriter, r *http.Request) {
	var req GenerateScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	script, err := h.svc.GenerateScript(r.Context(), req.TestCase)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, GenerateScriptResponse{
		Status: "success",
		Script: script,
	})
}
