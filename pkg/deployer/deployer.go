/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/apimachinery/pkg/api/errors"

	apperrors "github.com/NVIDIA/inference-stack/pkg/errors"
)

// Deploy creates or updates all stack resources in dependency order.
// The namespace goes first so that every namespaced resource has a home,
// and the service goes last so it never selects pods that cannot exist.
func (d *Deployer) Deploy(ctx context.Context) error {
	start := time.Now()

	if err := d.stack.Validate(); err != nil {
		deployTotal.WithLabelValues(statusError).Inc()
		return err
	}

	slog.Info("deploying inference stack",
		"namespace", d.stack.Namespace,
		"app", d.stack.App,
		"image", d.stack.Image,
	)

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Namespace", d.ensureNamespace},
		{"PersistentVolume", d.ensurePersistentVolume},
		{"PersistentVolumeClaim", d.ensurePersistentVolumeClaim},
		{"ConfigMap", d.ensureConfigMap},
		{"Deployment", d.ensureDeployment},
		{"Service", d.ensureService},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			deployTotal.WithLabelValues(statusError).Inc()
			return apperrors.WrapWithContext(codeForK8sError(err),
				fmt.Sprintf("failed to apply %s", step.name), err,
				map[string]any{"namespace": d.stack.Namespace, "resource": step.name})
		}
		slog.Debug("resource applied", "resource", step.name, "namespace", d.stack.Namespace)
	}

	deployTotal.WithLabelValues(statusSuccess).Inc()
	deployDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Delete removes the stack resources in reverse dependency order.
// Resources that are already gone are skipped. With opts.Wait, Delete
// blocks until the workload, claim, volume, and namespace finalizers clear.
func (d *Deployer) Delete(ctx context.Context, opts DeleteOptions) error {
	start := time.Now()

	slog.Info("deleting inference stack",
		"namespace", d.stack.Namespace,
		"app", d.stack.App,
		"wait", opts.Wait,
	)

	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"Service", d.deleteService},
		{"Deployment", d.deleteDeployment},
		{"ConfigMap", d.deleteConfigMap},
		{"PersistentVolumeClaim", d.deletePersistentVolumeClaim},
		{"PersistentVolume", d.deletePersistentVolume},
	}
	if !opts.KeepNamespace {
		steps = append(steps, struct {
			name string
			fn   func(context.Context) error
		}{"Namespace", d.deleteNamespace})
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			deleteTotal.WithLabelValues(statusError).Inc()
			return apperrors.WrapWithContext(codeForK8sError(err),
				fmt.Sprintf("failed to delete %s", step.name), err,
				map[string]any{"namespace": d.stack.Namespace, "resource": step.name})
		}
		slog.Debug("resource deleted", "resource", step.name, "namespace", d.stack.Namespace)
	}

	if opts.Wait {
		if err := d.waitForRemoval(ctx, opts); err != nil {
			deleteTotal.WithLabelValues(statusError).Inc()
			return err
		}
	}

	deleteTotal.WithLabelValues(statusSuccess).Inc()
	deleteDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Redeploy tears the stack down, waits for the teardown to finish, and
// deploys it fresh. The GPU workload runs a single replica with exclusive
// device access, so the old pod must be fully gone before the new one starts.
func (d *Deployer) Redeploy(ctx context.Context) error {
	if err := d.Delete(ctx, DeleteOptions{Wait: true, KeepNamespace: true}); err != nil {
		return err
	}
	return d.Deploy(ctx)
}

// waitForRemoval waits concurrently for the resources with finalizers.
func (d *Deployer) waitForRemoval(ctx context.Context, opts DeleteOptions) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.waitForDeploymentDeletion(gctx) })
	g.Go(func() error { return d.waitForClaimDeletion(gctx) })
	g.Go(func() error { return d.waitForVolumeDeletion(gctx) })
	if !opts.KeepNamespace {
		g.Go(func() error { return d.waitForNamespaceDeletion(gctx) })
	}
	return g.Wait()
}

// ignoreAlreadyExists returns nil if the error is "already exists", otherwise returns the error.
// Used to make resource creation idempotent.
func ignoreAlreadyExists(err error) error {
	if errors.IsAlreadyExists(err) {
		return nil
	}
	return err
}

// ignoreNotFound returns nil if the error is "not found", otherwise returns the error.
// Used to make resource deletion idempotent.
func ignoreNotFound(err error) error {
	if errors.IsNotFound(err) {
		return nil
	}
	return err
}

// codeForK8sError maps a Kubernetes API error to a structured error code.
func codeForK8sError(err error) apperrors.ErrorCode {
	switch {
	case errors.IsNotFound(err):
		return apperrors.ErrCodeNotFound
	case errors.IsUnauthorized(err) || errors.IsForbidden(err):
		return apperrors.ErrCodeUnauthorized
	case errors.IsTimeout(err) || errors.IsServerTimeout(err):
		return apperrors.ErrCodeTimeout
	case errors.IsConflict(err) || errors.IsAlreadyExists(err):
		return apperrors.ErrCodeConflict
	case errors.IsInvalid(err) || errors.IsBadRequest(err):
		return apperrors.ErrCodeInvalidRequest
	case errors.IsServiceUnavailable(err):
		return apperrors.ErrCodeUnavailable
	default:
		return apperrors.ErrCodeInternal
	}
}
