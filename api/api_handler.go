package api

import (
	"errors"
	"net/http"
	"time"

	"cpusched/domain"
	"cpusched/helpers"
	"cpusched/schedule_algorithms"

	"github.com/emicklei/go-restful/v3"
	"github.com/google/uuid"
	"github.com/rcrowley/go-metrics"
	"go.uber.org/zap"
)

const runCachePrefix = "run:"

// statusForError maps engine and storage errors to http status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrEmptyAggregate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateIdentity):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReuseWithoutReset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrRunNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (api *API) writeError(response *restful.Response, statusCode int, message string) {
	errorData := domain.ErrorResponse{
		Message:    message,
		StatusCode: statusCode,
	}
	if err := response.WriteHeaderAndEntity(statusCode, errorData); err != nil {
		api.apiLogger.Error("could not write error response", zap.Error(err))
	}
}

// ScheduleProcesses runs the requested policy, stores the run and returns it
func (api *API) ScheduleProcesses(request *restful.Request, response *restful.Response) {
	startTime := time.Now()
	defer metrics.GetOrRegisterTimer("schedule_latency.response", api.metricsRegistry).UpdateSince(startTime)
	errorsCounter := metrics.GetOrRegisterCounter("schedule.errors", api.metricsRegistry)

	scheduleRequest := domain.ScheduleRequest{}
	err := request.ReadEntity(&scheduleRequest)
	if err != nil {
		api.apiLogger.Error("Couldn't read body", zap.Error(err))
		errorsCounter.Inc(1)
		api.writeError(response, http.StatusBadRequest, "Bad Request/ could not read body")
		return
	}

	algorithm, err := schedule_algorithms.NormalizeAlgorithm(scheduleRequest.Algorithm)
	if err != nil {
		errorsCounter.Inc(1)
		api.writeError(response, http.StatusBadRequest, "Bad Request/ "+err.Error())
		return
	}
	scheduleRequest.Algorithm = algorithm
	if algorithm == schedule_algorithms.RoundRobin {
		if scheduleRequest.Quantum == 0 {
			scheduleRequest.Quantum = api.defaultQuantum
		}
	} else {
		scheduleRequest.Quantum = 0
	}

	cacheKey, err := helpers.HashRequest(&scheduleRequest)
	if err != nil {
		api.apiLogger.Error("could not hash request", zap.Error(err))
		errorsCounter.Inc(1)
		api.writeError(response, http.StatusInternalServerError, "Internal error/ could not hash request")
		return
	}
	if cachedRun, found := api.apiCache.Get(cacheKey); found {
		metrics.GetOrRegisterCounter("schedule.cache_hits", api.metricsRegistry).Inc(1)
		api.apiLogger.Debug("schedule request served from cache", zap.String("run_id", cachedRun.(*domain.ScheduleRun).RunID))
		response.WriteHeaderAndEntity(http.StatusCreated, cachedRun)
		return
	}

	completed, timeline, err := schedule_algorithms.Run(algorithm, scheduleRequest.Processes, scheduleRequest.Quantum, api.apiLogger)
	if err != nil {
		errorsCounter.Inc(1)
		api.writeError(response, statusForError(err), err.Error())
		return
	}
	if err := timeline.Validate(); err != nil {
		api.apiLogger.Error("timeline invariant violated", zap.Error(err), zap.String("algorithm", algorithm))
		errorsCounter.Inc(1)
		api.writeError(response, http.StatusInternalServerError, "Internal error/ "+err.Error())
		return
	}
	summary, err := schedule_algorithms.CalculateSummary(completed)
	if err != nil {
		errorsCounter.Inc(1)
		api.writeError(response, statusForError(err), err.Error())
		return
	}

	run := &domain.ScheduleRun{
		CreatedTimestamp: time.Now().UTC(),
		RunID:            uuid.New().String(),
		Algorithm:        algorithm,
		Completed:        completed,
		Timeline:         timeline,
		Summary:          summary,
		Quantum:          scheduleRequest.Quantum,
	}

	err = api.runStore.InsertRun(run)
	if err != nil {
		errorsCounter.Inc(1)
		api.writeError(response, http.StatusInternalServerError, "Internal error/ could not store run")
		return
	}
	if api.reportUploader != nil {
		// the run is already stored, a failed export is reported in logs and metrics only
		if err := api.reportUploader.UploadReport(run); err != nil {
			api.apiLogger.Error("could not export run report", zap.Error(err), zap.String("run_id", run.RunID))
			metrics.GetOrRegisterCounter("schedule.export_errors", api.metricsRegistry).Inc(1)
		}
	}

	api.apiCache.SetWithTTL(cacheKey, run, 1, api.cacheTTL)
	api.apiCache.SetWithTTL(runCachePrefix+run.RunID, run, 1, api.cacheTTL)
	metrics.GetOrRegisterCounter("schedule.run", api.metricsRegistry).Inc(1)

	api.apiLogger.Info("scheduled processes", zap.String("run_id", run.RunID), zap.String("algorithm", algorithm),
		zap.Int("processes", len(completed)), zap.Float64("average_waiting_time", summary.AverageWaitingTime))
	response.WriteHeaderAndEntity(http.StatusCreated, run)
}

// GetScheduleRun retrieves a stored run
func (api *API) GetScheduleRun(request *restful.Request, response *restful.Response) {
	metrics.GetOrRegisterCounter("schedule.get", api.metricsRegistry).Inc(1)
	runID := request.PathParameter(runIDParam)
	if runID == "" {
		api.writeError(response, http.StatusBadRequest, "Bad Request/ empty run id")
		return
	}

	if cachedRun, found := api.apiCache.Get(runCachePrefix + runID); found {
		response.WriteEntity(cachedRun)
		return
	}

	run, err := api.runStore.GetRun(runID)
	if err != nil {
		api.writeError(response, statusForError(err), err.Error())
		return
	}
	api.apiCache.SetWithTTL(runCachePrefix+runID, run, 1, api.cacheTTL)
	response.WriteEntity(run)
}

// ListScheduleRuns lists stored runs matching the filter query parameter
func (api *API) ListScheduleRuns(request *restful.Request, response *restful.Response) {
	metrics.GetOrRegisterCounter("schedule.list", api.metricsRegistry).Inc(1)
	filter := request.QueryParameter("filter")

	runs, err := api.runStore.ListRuns(filter)
	if err != nil {
		api.writeError(response, statusForError(err), err.Error())
		return
	}
	response.WriteEntity(domain.GetScheduleRunsData{Response: runs})
}

// DeleteScheduleRun deletes a stored run
func (api *API) DeleteScheduleRun(request *restful.Request, response *restful.Response) {
	runID := request.PathParameter(runIDParam)
	err := api.runStore.DeleteRun(runID)
	if err != nil {
		api.writeError(response, statusForError(err), err.Error())
		return
	}
	// cached responses may still point at the deleted run
	api.apiCache.Clear()
	response.Write([]byte("Run deleted succesfully"))
}

// GetAlgorithms returns the supported policy names
func (api *API) GetAlgorithms(request *restful.Request, response *restful.Response) {
	response.WriteEntity(schedule_algorithms.Algorithms)
}

// GenerateProcesses returns random demo processes
func (api *API) GenerateProcesses(request *restful.Request, response *restful.Response) {
	metrics.GetOrRegisterCounter("processes.generate", api.metricsRegistry).Inc(1)
	generateRequest := domain.GenerateRequest{}
	err := request.ReadEntity(&generateRequest)
	if err != nil {
		api.apiLogger.Error("Couldn't read body", zap.Error(err))
		api.writeError(response, http.StatusBadRequest, "Bad Request/ could not read body")
		return
	}

	processes, err := helpers.GenerateProcesses(generateRequest)
	if err != nil {
		api.writeError(response, statusForError(err), err.Error())
		return
	}
	response.WriteEntity(processes)
}
