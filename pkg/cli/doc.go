// Package cli implements the command-line interface for the NVIDIA
// Inference Stack nisctl tool.
//
// # Overview
//
// The nisctl CLI manages a GPU inference serving stack on Kubernetes: an
// NFS-backed model store, a conda dependency environment, a single-replica
// multi-GPU inference server, and the NodePort service exposing it. It is
// designed for cluster administrators operating NVIDIA GPU infrastructure.
//
// # Commands
//
// deploy - Apply the stack resources to a cluster:
//
//	nisctl deploy [--config FILE] [--image-tag TAG] [--wait]
//
// Creates or updates the namespace, storage, configuration, workload, and
// service resources in dependency order. Idempotent.
//
// delete - Remove the stack resources:
//
//	nisctl delete [--wait] [--keep-namespace]
//
// Removes resources in reverse dependency order, tolerating resources that
// are already gone. The NFS export itself is never touched.
//
// redeploy - Tear down and deploy fresh:
//
//	nisctl redeploy [--image-tag TAG] [--wait]
//
// Deletes the stack, waits for the teardown to finish, and deploys it
// again. Required when replacing the workload on exclusively-held GPUs.
//
// render - Aggregate the manifests without a cluster:
//
//	nisctl render [--output DIR | --output oci://registry/repo:tag]
//
// Writes the stack as a single multi-document YAML stream to stdout, a
// directory, or an OCI registry.
//
// status - Report observed resource state:
//
//	nisctl status [--format yaml|json] [--watch]
//
// logs - Print or follow the workload pod logs:
//
//	nisctl logs [--follow]
//
// # Configuration
//
// Commands read an optional stack configuration file (--config) and apply
// flag overrides on top. Global flags control logging (--debug,
// --log-level) and cluster access (--kubeconfig).
//
// # Versioning
//
// The version, commit, and date variables are set at build time:
//
//	go build -ldflags="-X 'github.com/NVIDIA/inference-stack/pkg/cli.version=1.0.0'"
package cli
