package api

import (
	"context"
	"net/http"
	"time"

	"cpusched/domain"

	"github.com/dgraph-io/ristretto"
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

const (
	schedulePath   = "/schedule"
	processesPath  = "/processes"
	algorithmsPath = "/algorithms"
	generatePath   = "/generate"
	runIDParam     = "run_id"
)

// RunStore persists schedule runs
type RunStore interface {
	InsertRun(run *domain.ScheduleRun) error
	GetRun(runID string) (*domain.ScheduleRun, error)
	ListRuns(filter string) ([]*domain.ScheduleRun, error)
	DeleteRun(runID string) error
}

// ReportUploader exports run reports outside the service
type ReportUploader interface {
	UploadReport(run *domain.ScheduleRun) error
}

// API represents the object used for the api, api handlers and contains context and storage + local cache
type API struct {
	ctx             context.Context
	runStore        RunStore
	reportUploader  ReportUploader
	apiCache        *ristretto.Cache
	apiLogger       *zap.Logger
	metricsRegistry metrics.Registry
	defaultQuantum  int
	cacheTTL        time.Duration
}

// NewAPI returns an API object. reportUploader may be nil when exporting is disabled.
func NewAPI(ctx context.Context, runStore RunStore, reportUploader ReportUploader, cache *ristretto.Cache, logger *zap.Logger,
	registry metrics.Registry, defaultQuantum int, cacheTTL time.Duration) *API {
	return &API{
		ctx:             ctx,
		runStore:        runStore,
		reportUploader:  reportUploader,
		apiCache:        cache,
		apiLogger:       logger,
		metricsRegistry: registry,
		defaultQuantum:  defaultQuantum,
		cacheTTL:        cacheTTL,
	}
}

// RegisterRoutes adds routes for all endpoints
func (api *API) RegisterRoutes(ws *restful.WebService) {
	tags := []string{"schedule"}
	ws.Route(
		ws.
			POST(schedulePath).
			Doc("Runs a scheduling policy over a process set").
			Reads(domain.ScheduleRequest{}).
			Metadata(restfulspec.KeyOpenAPITags, tags).
			Produces(restful.MIME_JSON).
			Consumes(restful.MIME_JSON).
			To(api.ScheduleProcesses).
			Writes(domain.ScheduleRun{}).
			Returns(http.StatusCreated, "Created", domain.ScheduleRun{}).
			Returns(http.StatusBadRequest, "Bad Request", domain.ErrorResponse{}).
			Returns(http.StatusConflict, "Duplicate pid", domain.ErrorResponse{}).
			Returns(http.StatusUnprocessableEntity, "Process reused without reset", domain.ErrorResponse{}))

	ws.Route(
		ws.
			GET(schedulePath+"/{"+runIDParam+"}").
			Doc("Retrieves a schedule run").
			Param(ws.PathParameter(runIDParam, "id of the run").DataType("string").Required(true).AllowEmptyValue(false)).
			Metadata(restfulspec.KeyOpenAPITags, tags).
			Produces(restful.MIME_JSON).
			To(api.GetScheduleRun).
			Writes(domain.ScheduleRun{}).
			Returns(http.StatusOK, "OK", domain.ScheduleRun{}).
			Returns(http.StatusNotFound, "Run Not Found", domain.ErrorResponse{}))

	ws.Route(
		ws.
			GET(schedulePath).
			Doc("Lists schedule runs").
			Param(ws.QueryParameter("filter",
				"filter runs by algorithm, quantum, processes, average_waiting_time, average_turnaround_time").
				DataType("string").AllowEmptyValue(true)).
			Metadata(restfulspec.KeyOpenAPITags, tags).
			Produces(restful.MIME_JSON).
			To(api.ListScheduleRuns).
			Writes(domain.GetScheduleRunsData{}).
			Returns(http.StatusOK, "OK", domain.GetScheduleRunsData{}).
			Returns(http.StatusBadRequest, "Bad Request", domain.ErrorResponse{}))

	ws.Route(
		ws.
			DELETE(schedulePath+"/{"+runIDParam+"}").
			Doc("Deletes a schedule run").
			Param(ws.PathParameter(runIDParam, "id of the run").DataType("string").Required(true).AllowEmptyValue(false)).
			Metadata(restfulspec.KeyOpenAPITags, tags).
			Produces(restful.MIME_JSON).
			To(api.DeleteScheduleRun).
			Returns(http.StatusOK, "OK", "Run deleted succesfully").
			Returns(http.StatusNotFound, "Run Not Found", domain.ErrorResponse{}))

	ws.Route(
		ws.
			GET(algorithmsPath).
			Doc("Lists supported scheduling policies").
			Metadata(restfulspec.KeyOpenAPITags, tags).
			Produces(restful.MIME_JSON).
			To(api.GetAlgorithms).
			Writes([]string{}).
			Returns(http.StatusOK, "OK", []string{}))

	tags = []string{"processes"}
	ws.Route(
		ws.
			POST(processesPath+generatePath).
			Doc("Generates random demo processes").
			Reads(domain.GenerateRequest{}).
			Metadata(restfulspec.KeyOpenAPITags, tags).
			Produces(restful.MIME_JSON).
			Consumes(restful.MIME_JSON).
			To(api.GenerateProcesses).
			Writes([]domain.Process{}).
			Returns(http.StatusOK, "OK", []domain.Process{}).
			Returns(http.StatusBadRequest, "Bad Request", domain.ErrorResponse{}))
}
