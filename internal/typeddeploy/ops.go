package typeddeploy

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/deploykit/internal/domain/models"
)

// Deploy deploys name with constructor arguments typed as C's constructor.
func Deploy[C Contract, A Args](ctx context.Context, b Backend, name Name[C, A], args A, opts DeployOptions) (*models.DeployResult, error) {
	return b.Deploy(ctx, name.String(), DeployRequest{
		DeployOptions: opts,
		Contract:      name.Artifact(),
		Args:          values(args),
	})
}

// DeployNoArgs deploys a contract whose constructor takes no arguments.
func DeployNoArgs[C Contract](ctx context.Context, b Backend, name Name[C, NoArgs], opts DeployOptions) (*models.DeployResult, error) {
	return Deploy(ctx, b, name, NoArgs{}, opts)
}

// Execute sends a transaction calling method on the deployment name.
func Execute[C Contract, K Args, A Args](
	ctx context.Context,
	b Backend,
	name Name[C, K],
	opts TxOptions,
	method Method[C, A],
	args A,
) (*models.Receipt, error) {
	return b.Execute(ctx, name.String(), opts, method.Name(), values(args)...)
}

// Read calls view on the deployment name with default call options.
func Read[C Contract, K Args, A Args, R any](
	ctx context.Context,
	b Backend,
	name Name[C, K],
	view View[C, A, R],
	args A,
) (R, error) {
	return ReadWith(ctx, b, name, CallOptions{}, view, args)
}

// ReadWith calls view on the deployment name with explicit call options.
func ReadWith[C Contract, K Args, A Args, R any](
	ctx context.Context,
	b Backend,
	name Name[C, K],
	opts CallOptions,
	view View[C, A, R],
	args A,
) (R, error) {
	var zero R
	out, err := b.Read(ctx, name.String(), opts, view.Name(), values(args)...)
	if err != nil {
		return zero, err
	}
	decode := view.decode
	if decode == nil {
		decode = decodeSingle[R]
	}
	res, err := decode(out)
	if err != nil {
		return zero, fmt.Errorf("decode %s.%s: %w", name.String(), view.Name(), err)
	}
	return res, nil
}

// Get returns the recorded deployment for name.
func Get(ctx context.Context, b Backend, name Named) (*models.Deployment, error) {
	return b.Get(ctx, name.String())
}

func values(a Args) []any {
	v := a.Values()
	if v == nil {
		return []any{}
	}
	return v
}
