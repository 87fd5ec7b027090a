package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdemir/pipekit/auth"
	apperrors "github.com/kdemir/pipekit/errors"
	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/notify"
	"github.com/kdemir/pipekit/observability"
	"github.com/kdemir/pipekit/pipeline"
	"github.com/kdemir/pipekit/run"
	"github.com/kdemir/pipekit/server/middleware"
	"github.com/kdemir/pipekit/version"
)

// API wires the pipeline model, execution engine, and run store onto
// HTTP routes.
type API struct {
	ServiceName string
	Loader      *pipeline.FileLoader
	Engine      *run.Engine
	Registry    *run.Registry
	Store       *run.Store
	// Notifier, Auth and Checkers are optional.
	Notifier *notify.Notifier
	Auth     *auth.Service
	Checkers []observability.HealthChecker
	// RunRateLimitPerMinute throttles run submissions (0 = off).
	RunRateLimitPerMinute int

	log *logger.Logger
}

// NewAPI creates an API handler set. A nil log falls back to the global
// logger.
func NewAPI(api API, log *logger.Logger) *API {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	api.log = log.WithComponent("api")
	return &api
}

// RegisterRoutes mounts all routes on the server's Gin engine.
func (a *API) RegisterRoutes(s *Server) {
	r := s.GinEngine()

	r.GET("/", a.index)
	r.GET("/health", a.health)

	v1 := r.Group("/v1")
	if a.Auth != nil {
		v1.Use(middleware.Auth(a.Auth))
	}

	v1.GET("/pipelines", a.listPipelines)
	v1.POST("/pipelines/validate", a.validatePipeline)
	v1.POST("/pipelines/plan", a.planPipeline)

	runs := v1.Group("")
	if a.Auth != nil {
		runs.Use(middleware.RequireRole(auth.RoleOperator))
	}
	if a.RunRateLimitPerMinute > 0 {
		runs.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerMinute: a.RunRateLimitPerMinute,
			KeyFunc:           middleware.SubjectBasedKey,
		}))
	}
	runs.POST("/runs", a.createRun)

	v1.GET("/runs", a.listRuns)
	v1.GET("/runs/:id", a.getRun)
}

func (a *API) index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    a.ServiceName,
		"version": version.GetVersionInfo().Version,
	})
}

func (a *API) health(c *gin.Context) {
	sh := observability.NewServiceHealth(a.ServiceName, version.GetVersionInfo().Version)
	for _, checker := range a.Checkers {
		sh.AddComponent(checker.CheckHealth(c.Request.Context()))
	}

	body := gin.H{"status": "OK"}
	httpStatus := http.StatusOK
	if sh.Status != observability.HealthStatusUp {
		body["status"] = string(sh.Status)
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}
	}
	if len(sh.Components) > 0 {
		body["components"] = sh.Components
	}
	c.JSON(httpStatus, body)
}

// pipelineRequest selects a pipeline either inline as YAML or by name
// from the configured pipeline directories, with optional parameter
// values for planning and running.
type pipelineRequest struct {
	Pipeline string                    `json:"pipeline"`
	Name     string                    `json:"name"`
	Params   map[string]pipeline.Value `json:"params"`
}

func (a *API) resolvePipeline(c *gin.Context) (*pipelineRequest, *pipeline.Pipeline, error) {
	var req pipelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, nil, apperrors.InvalidFormat("body", "JSON").WithCause(err)
	}

	switch {
	case req.Pipeline != "":
		p, err := pipeline.Parse([]byte(req.Pipeline))
		if err != nil {
			return nil, nil, err
		}
		return &req, p, nil
	case req.Name != "":
		if a.Loader == nil {
			return nil, nil, apperrors.NotFound("pipeline", req.Name)
		}
		p, err := a.Loader.Load(req.Name)
		if err != nil {
			return nil, nil, apperrors.NotFound("pipeline", req.Name).WithCause(err)
		}
		return &req, p, nil
	default:
		return nil, nil, apperrors.MissingField("pipeline")
	}
}

func (a *API) listPipelines(c *gin.Context) {
	var names []string
	if a.Loader != nil {
		names = a.Loader.List()
	}
	RespondOKWithMeta(c, names, &Meta{Total: len(names)})
}

func (a *API) validatePipeline(c *gin.Context) {
	_, p, err := a.resolvePipeline(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	if err := run.Lint(p); err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"valid":    true,
		"pipeline": p.Metadata.Name,
		"tasks":    len(p.Spec.Tasks),
	})
}

// taskInputView is the JSON shape of a resolved task input.
type taskInputView struct {
	Ref        pipeline.TaskRef          `json:"ref"`
	Params     map[string]pipeline.Value `json:"params,omitempty"`
	Workspaces map[string]string         `json:"workspaces,omitempty"`
}

func (a *API) planPipeline(c *gin.Context) {
	req, p, err := a.resolvePipeline(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	plan, err := run.NewPlan(p, req.Params)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	tasks := make(map[string]taskInputView, len(plan.Inputs))
	for name, in := range plan.Inputs {
		tasks[name] = taskInputView{Ref: in.Ref, Params: in.Params, Workspaces: in.Workspaces}
	}
	RespondOK(c, gin.H{
		"pipeline": p.Metadata.Name,
		"batches":  plan.Batches,
		"tasks":    tasks,
	})
}

func (a *API) createRun(c *gin.Context) {
	req, p, err := a.resolvePipeline(c)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	plan, err := run.NewPlan(p, req.Params)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	r, err := a.Engine.Execute(c.Request.Context(), plan, a.Registry)
	if err != nil && r == nil {
		RespondWithError(c, err)
		return
	}

	a.Store.Save(r)
	if a.Notifier != nil {
		// Webhook delivery retries must outlive the request.
		go a.Notifier.RunFinished(context.WithoutCancel(c.Request.Context()), r)
	}
	RespondCreated(c, r)
}

func (a *API) listRuns(c *gin.Context) {
	runs := a.Store.List()
	RespondOKWithMeta(c, runs, &Meta{Total: len(runs)})
}

func (a *API) getRun(c *gin.Context) {
	r, err := a.Store.Get(c.Param("id"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	RespondOK(c, r)
}
