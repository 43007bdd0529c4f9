package repositories

import (
	"os"
	"runtime/pprof"

	"go.uber.org/zap"
)

/*
go tool pprof -pdf profile_cpu.prof > profile_cpu.pdf
*/

// ProfilingService can start/stop a CPU profile of the scheduling service and write results to a file
type ProfilingService struct {
	Cpuprofile string   // the output filename to write profile results, e.g. profile_cpu.prof
	Cpufile    *os.File // if not nil, then profiling is active
	CpuLogger  *zap.Logger
}

// NewProfileService creates a new profile
func NewProfileService(outputFilename string, logger *zap.Logger) *ProfilingService {
	return &ProfilingService{
		Cpuprofile: outputFilename,
		CpuLogger:  logger,
	}
}

// StartProfiling starts pprof profile, an empty file name disables profiling
func (p *ProfilingService) StartProfiling() error {
	if p.Cpuprofile == "" || p.Cpufile != nil {
		return nil
	}
	cpufile, err := os.Create(p.Cpuprofile)
	if err != nil {
		p.CpuLogger.Error("could not create file", zap.Error(err))
		return err
	}
	if err := pprof.StartCPUProfile(cpufile); err != nil {
		p.CpuLogger.Error("could not start cpu profile", zap.Error(err))
		cpufile.Close()
		return err
	}
	p.Cpufile = cpufile
	p.CpuLogger.Debug("cpu profiling started", zap.String("file", p.Cpuprofile))
	return nil
}

// StopProfiling stops pprof and closes cpu file
func (p *ProfilingService) StopProfiling() {
	if p.Cpufile == nil {
		return
	}
	pprof.StopCPUProfile()
	p.Cpufile.Close()
	p.Cpufile = nil
	p.CpuLogger.Debug("cpu profiling stopped", zap.String("file", p.Cpuprofile))
}
