package handler

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
)

// The inventory service is described by hand over well-known protobuf
// types, so no generated code is needed. Every method answers with a Struct
// of the form {"items": [{"name", "display_name", "quantity"}]}.

const inventoryServiceName = "inventory.v1.InventoryService"

const (
	listMethod      = "/" + inventoryServiceName + "/List"
	incrementMethod = "/" + inventoryServiceName + "/Increment"
	decrementMethod = "/" + inventoryServiceName + "/Decrement"
	searchMethod    = "/" + inventoryServiceName + "/Search"
)

type InventoryServer interface {
	List(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Increment(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Decrement(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	Search(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

var inventoryServiceDesc = grpc.ServiceDesc{
	ServiceName: inventoryServiceName,
	HandlerType: (*InventoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "List", Handler: listHandler},
		{MethodName: "Increment", Handler: nameHandler(incrementMethod, InventoryServer.Increment)},
		{MethodName: "Decrement", Handler: nameHandler(decrementMethod, InventoryServer.Decrement)},
		{MethodName: "Search", Handler: nameHandler(searchMethod, InventoryServer.Search)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "inventory/v1/inventory.proto",
}

func RegisterInventoryServer(s grpc.ServiceRegistrar, srv InventoryServer) {
	s.RegisterService(&inventoryServiceDesc, srv)
}

func listHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InventoryServer).List(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InventoryServer).List(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

type nameMethod func(InventoryServer, context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)

func nameHandler(fullMethod string, call nameMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(InventoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(InventoryServer), ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// InventoryClient calls the inventory service over any gRPC connection.
type InventoryClient struct {
	cc grpc.ClientConnInterface
}

func NewInventoryClient(cc grpc.ClientConnInterface) *InventoryClient {
	return &InventoryClient{cc: cc}
}

func (c *InventoryClient) List(ctx context.Context) ([]domain.Item, error) {
	return c.invoke(ctx, listMethod, &emptypb.Empty{})
}

func (c *InventoryClient) Increment(ctx context.Context, name string) ([]domain.Item, error) {
	return c.invoke(ctx, incrementMethod, wrapperspb.String(name))
}

func (c *InventoryClient) Decrement(ctx context.Context, name string) ([]domain.Item, error) {
	return c.invoke(ctx, decrementMethod, wrapperspb.String(name))
}

func (c *InventoryClient) Search(ctx context.Context, query string) ([]domain.Item, error) {
	return c.invoke(ctx, searchMethod, wrapperspb.String(query))
}

func (c *InventoryClient) invoke(ctx context.Context, method string, in any) ([]domain.Item, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out); err != nil {
		return nil, fromStatus(err)
	}
	return itemsFromStruct(out)
}

func itemsToStruct(items []domain.Item) (*structpb.Struct, error) {
	list := make([]any, 0, len(items))
	for _, it := range items {
		list = append(list, map[string]any{
			"name":         it.Name,
			"display_name": it.DisplayName(),
			"quantity":     it.Quantity,
		})
	}
	return structpb.NewStruct(map[string]any{"items": list})
}

func itemsFromStruct(s *structpb.Struct) ([]domain.Item, error) {
	values := s.GetFields()["items"].GetListValue().GetValues()

	items := make([]domain.Item, 0, len(values))
	for i, v := range values {
		fields := v.GetStructValue().GetFields()
		if fields == nil {
			return nil, fmt.Errorf("item %d: not an object", i)
		}
		q, err := domain.ParseQuantity(fields["quantity"].GetNumberValue())
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, domain.Item{Name: fields["name"].GetStringValue(), Quantity: q})
	}
	return items, nil
}
