package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"pathwise.app/mentor/internal/agent"
	"pathwise.app/mentor/internal/domain"
	"pathwise.app/mentor/internal/http/handler"
)

var _ = Describe("AgentHandler", func() {
	var (
		router   *gin.Engine
		pipeline *mockPipeline
	)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/agent", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		pipeline = &mockPipeline{}
		h := handler.NewAgentHandler(pipeline)
		router.POST("/agent", h.Generate)
	})

	It("returns 200 with the assembled plan", func() {
		pipeline.runFn = func(_ context.Context, objective string, skills []domain.Skill) agent.Result {
			Expect(objective).To(Equal("aprender go"))
			Expect(skills).To(HaveLen(1))
			Expect(skills[0].Name).To(Equal("Python"))
			Expect(skills[0].Categories).To(Equal([]string{"backend"}))
			return agent.Result{Status: agent.StatusOK, Response: "✨ plan"}
		}

		body, _ := json.Marshal(map[string]any{
			"objective": "aprender go",
			"skills": []map[string]any{
				{"name": "Python", "proficiency": "intermedio", "categories": []string{"backend"}},
			},
		})
		w := post(string(body))

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("ok"))
		Expect(resp["response"]).To(Equal("✨ plan"))
	})

	It("returns 200 with the rejection message for invalid objectives", func() {
		pipeline.runFn = func(context.Context, string, []domain.Skill) agent.Result {
			return agent.Result{Status: agent.StatusInvalid, Response: agent.RejectionMessage}
		}

		w := post(`{"objective": "mejorar comunicación"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]string
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("invalid_objective"))
		Expect(resp["response"]).To(Equal(agent.RejectionMessage))
	})

	It("runs the pipeline even when skills are absent", func() {
		pipeline.runFn = func(_ context.Context, _ string, skills []domain.Skill) agent.Result {
			Expect(skills).To(BeNil())
			return agent.Result{Status: agent.StatusOK, Response: "plan"}
		}

		w := post(`{"objective": "aprender docker"}`)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(pipeline.calls).To(Equal(1))
	})

	It("returns 400 on malformed JSON without running the pipeline", func() {
		w := post(`{`)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(pipeline.calls).To(BeZero())
	})
})
