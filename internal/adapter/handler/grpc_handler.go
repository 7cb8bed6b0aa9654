package handler

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/core/service"
)

type GRPCHandler struct {
	inventory *service.InventoryService
	logger    *zap.Logger
}

var _ InventoryServer = (*GRPCHandler)(nil)

func NewGRPCHandler(inventory *service.InventoryService, logger *zap.Logger) *GRPCHandler {
	return &GRPCHandler{inventory: inventory, logger: logger}
}

func (h *GRPCHandler) List(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	items, err := h.inventory.List(ctx)
	return h.reply(ctx, "list", items, err)
}

func (h *GRPCHandler) Increment(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	items, err := h.inventory.Increment(ctx, req.GetValue())
	return h.reply(ctx, "increment", items, err)
}

func (h *GRPCHandler) Decrement(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	items, err := h.inventory.Decrement(ctx, req.GetValue())
	return h.reply(ctx, "decrement", items, err)
}

func (h *GRPCHandler) Search(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	items, err := h.inventory.Search(ctx, req.GetValue())
	return h.reply(ctx, "search", items, err)
}

func (h *GRPCHandler) reply(ctx context.Context, op string, items []domain.Item, err error) (*structpb.Struct, error) {
	class := classify(err)
	requestsTotal.WithLabelValues("grpc", op, class.label).Inc()

	if err != nil {
		loggerFrom(ctx, h.logger).Error("inventory request failed",
			zap.String("op", op),
			zap.Error(err),
		)
		return nil, status.Error(class.grpcCode, class.message)
	}

	return itemsToStruct(items)
}
