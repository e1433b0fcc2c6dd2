package grpcserver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"tecnoAcademiaAdmin/models"
)

// DirectoryClient calls the user directory service with a bearer token.
type DirectoryClient struct {
	cc    grpc.ClientConnInterface
	token string
	close func() error
}

// NewDirectoryClient wraps an existing connection.
func NewDirectoryClient(cc grpc.ClientConnInterface, token string) *DirectoryClient {
	return &DirectoryClient{cc: cc, token: token, close: func() error { return nil }}
}

// Dial connects to addr over plaintext. Extra options are appended.
func Dial(addr, token string, opts ...grpc.DialOption) (*DirectoryClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("dial directory %s: %w", addr, err)
	}
	c := NewDirectoryClient(conn, token)
	c.close = conn.Close
	return c, nil
}

// Close releases the connection if the client owns one.
func (c *DirectoryClient) Close() error { return c.close() }

func (c *DirectoryClient) outgoing(ctx context.Context) context.Context {
	kv := []string{requestIDHeader, uuid.NewString()}
	if c.token != "" {
		kv = append(kv, "authorization", "Bearer "+c.token)
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

// ListUsers returns every user known to the service.
func (c *DirectoryClient) ListUsers(ctx context.Context) ([]models.User, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(c.outgoing(ctx), ListUsersMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	return fromProtoUsers(out)
}

// CreateUser stores u; a zero ID lets the service assign one.
func (c *DirectoryClient) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	return c.writeUser(ctx, CreateUserMethod, u)
}

// UpdateUser replaces the stored fields of u.ID.
func (c *DirectoryClient) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	return c.writeUser(ctx, UpdateUserMethod, u)
}

func (c *DirectoryClient) writeUser(ctx context.Context, method string, u models.User) (models.User, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(c.outgoing(ctx), method, toProtoUser(u), out); err != nil {
		return models.User{}, err
	}
	return fromProtoUser(out)
}

// DeleteUser removes id from the service.
func (c *DirectoryClient) DeleteUser(ctx context.Context, id int64) error {
	return c.cc.Invoke(c.outgoing(ctx), DeleteUserMethod, wrapperspb.Int64(id), new(emptypb.Empty))
}

// ListRoles returns the role names the service accepts.
func (c *DirectoryClient) ListRoles(ctx context.Context) ([]models.Role, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(c.outgoing(ctx), ListRolesMethod, &emptypb.Empty{}, out); err != nil {
		return nil, err
	}
	roles := make([]models.Role, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		roles = append(roles, models.Role(v.GetStringValue()))
	}
	return roles, nil
}
