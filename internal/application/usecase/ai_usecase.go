package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/iknmuh/mypos/internal/application/dto"
	"github.com/iknmuh/mypos/internal/domain/repository"
	"github.com/iknmuh/mypos/pkg/logger"
)

const askTimeout = 15 * time.Second

const assistantSystemPrompt = "Kamu adalah asisten bisnis untuk pemilik warung dan toko kecil di Indonesia. " +
	"Jawab singkat, praktis, dan dalam Bahasa Indonesia. " +
	"Gunakan angka penjualan yang diberikan sebagai konteks bila ada."

// AIUseCase answers free-form business questions, enriching the prompt with
// today's figures so the assistant can reason about the store.
type AIUseCase struct {
	llm     LLMService
	reports repository.ReportRepository
	log     *logger.Logger
}

// NewAIUseCase wires the assistant use case.
func NewAIUseCase(llm LLMService, reports repository.ReportRepository, log *logger.Logger) *AIUseCase {
	return &AIUseCase{llm: llm, reports: reports, log: log}
}

// Ask forwards the question to the model with a bounded timeout.
func (uc *AIUseCase) Ask(ctx context.Context, storeID string, req *dto.AskAIRequest) (*dto.AskAIResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	system := assistantSystemPrompt
	if stats, err := uc.reports.DashboardStats(ctx, storeID, time.Now()); err == nil {
		system = fmt.Sprintf("%s\n\nData hari ini: omzet Rp%d, %d transaksi, %d produk, %d produk stok menipis.",
			assistantSystemPrompt, stats.RevenueToday, stats.TransactionsToday, stats.ProductCount, stats.LowStockCount)
	} else {
		uc.log.Warn().Err(err).Msg("dashboard stats unavailable for assistant context")
	}

	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	answer, err := uc.llm.Ask(ctx, system, req.Pertanyaan)
	if err != nil {
		return nil, fmt.Errorf("ask assistant: %w", err)
	}
	return &dto.AskAIResponse{Jawaban: answer}, nil
}
