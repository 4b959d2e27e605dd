package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/opsboard-api/internal/config"
	"github.com/vfg2006/opsboard-api/pkg/log"
)

// Resetter recarrega o banco demo com os dados de exemplo
type Resetter interface {
	Reset(ctx context.Context) error
}

// DemoResetConfig representa a configuração do agendador de reset do modo demo
type DemoResetConfig struct {
	CronSchedule string
	Enabled      bool
}

// DemoResetService agenda a limpeza periódica do banco demo
type DemoResetService struct {
	scheduler            *gocron.Scheduler
	config               DemoResetConfig
	seeder               Resetter
	resetRunning         bool
	resetMutex           sync.Mutex
	lastResetStartedAt   time.Time
	lastResetCompletedAt time.Time
	lastResetError       string
	now                  func() time.Time
}

// NewDemoResetService cria o agendador. Fora do modo demo ele nunca é iniciado.
func NewDemoResetService(seeder Resetter, appConfig *config.Config) *DemoResetService {
	resetConfig := DemoResetConfig{
		CronSchedule: appConfig.DemoReset.CronSchedule,
		Enabled:      appConfig.DemoReset.Enabled && appConfig.DemoMode(),
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": resetConfig.CronSchedule,
		"reset_enabled": resetConfig.Enabled,
	}).Info("Configuração do agendador de reset do demo carregada")

	return &DemoResetService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    resetConfig,
		seeder:    seeder,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start inicia o agendador e o encerra quando o contexto for cancelado
func (s *DemoResetService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Reset do banco demo desabilitado por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de reset do banco demo")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.resetDemoData(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar reset do banco demo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando agendador de reset do banco demo")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *DemoResetService) resetDemoData(ctx context.Context) {
	s.resetMutex.Lock()
	if s.resetRunning {
		s.resetMutex.Unlock()
		log.L.Info("Reset do banco demo já em andamento, ignorando")
		return
	}
	s.resetRunning = true
	s.lastResetStartedAt = s.now()
	s.resetMutex.Unlock()

	log.L.Info("Recarregando dados de exemplo do banco demo")

	err := s.seeder.Reset(ctx)

	s.resetMutex.Lock()
	defer s.resetMutex.Unlock()
	s.resetRunning = false
	s.lastResetCompletedAt = s.now()
	s.lastResetError = ""

	if err != nil {
		s.lastResetError = err.Error()
		log.L.WithError(err).Error("Erro ao recarregar o banco demo")
		return
	}

	log.L.WithField("duration_ms", s.lastResetCompletedAt.Sub(s.lastResetStartedAt).Milliseconds()).Info("Banco demo recarregado")
}

// TriggerManualSync dispara um reset fora do horário agendado.
// Retorna false quando já existe um reset em andamento.
func (s *DemoResetService) TriggerManualSync() bool {
	s.resetMutex.Lock()
	running := s.resetRunning
	s.resetMutex.Unlock()

	if running {
		log.L.Info("Reset do banco demo já em andamento, ignorando solicitação manual")
		return false
	}

	log.L.Info("Iniciando reset manual do banco demo")
	go s.resetDemoData(context.Background())
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DemoResetService) GetStatus() map[string]any {
	s.resetMutex.Lock()
	defer s.resetMutex.Unlock()

	return map[string]any{
		"reset_enabled":           s.config.Enabled,
		"reset_cron":              s.config.CronSchedule,
		"reset_running":           s.resetRunning,
		"last_reset_started_at":   s.lastResetStartedAt,
		"last_reset_completed_at": s.lastResetCompletedAt,
		"last_reset_error":        s.lastResetError,
	}
}
