/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/NVIDIA/inference-stack/pkg/defaults"
)

// GetPodLogs retrieves logs from the workload pod.
func (d *Deployer) GetPodLogs(ctx context.Context) (string, error) {
	pod, err := d.findWorkloadPod(ctx)
	if err != nil {
		return "", err
	}

	req := d.clientset.CoreV1().Pods(d.stack.Namespace).
		GetLogs(pod.Name, &corev1.PodLogOptions{})

	logs, err := req.Stream(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to stream logs: %w", err)
	}
	defer logs.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, logs); err != nil {
		return "", fmt.Errorf("failed to read logs: %w", err)
	}

	return buf.String(), nil
}

// StreamLogs streams logs from the workload pod to the provided writer.
// It follows the logs until the context is canceled.
func (d *Deployer) StreamLogs(ctx context.Context, w io.Writer, prefix string) error {
	pod, err := d.findWorkloadPod(ctx)
	if err != nil {
		return err
	}

	req := d.clientset.CoreV1().Pods(d.stack.Namespace).
		GetLogs(pod.Name, &corev1.PodLogOptions{Follow: true})

	logs, err := req.Stream(ctx)
	if err != nil {
		return fmt.Errorf("failed to stream logs: %w", err)
	}
	defer logs.Close()

	scanner := bufio.NewScanner(logs)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if prefix != "" {
				fmt.Fprintf(w, "%s %s\n", prefix, scanner.Text())
			} else {
				fmt.Fprintln(w, scanner.Text())
			}
		}
	}

	return scanner.Err()
}

// WaitForPodRunning waits for the workload pod to reach the Running phase.
// Useful for streaming logs before the rollout fully completes.
func (d *Deployer) WaitForPodRunning(ctx context.Context, timeout time.Duration) error {
	return wait.PollUntilContextTimeout(ctx, defaults.K8sPollInterval, timeout, true,
		func(ctx context.Context) (bool, error) {
			pods, err := d.clientset.CoreV1().Pods(d.stack.Namespace).List(ctx, metav1.ListOptions{
				LabelSelector: d.selectorString(),
			})
			if err != nil {
				return false, err
			}

			if len(pods.Items) == 0 {
				return false, nil // pod not created yet
			}

			pod := pods.Items[0]
			if pod.Status.Phase == corev1.PodRunning {
				return true, nil
			}

			if pod.Status.Phase == corev1.PodFailed {
				return false, fmt.Errorf("pod failed: %s", pod.Status.Message)
			}

			return false, nil
		},
	)
}

// findWorkloadPod returns the first pod matching the workload selector.
func (d *Deployer) findWorkloadPod(ctx context.Context) (*corev1.Pod, error) {
	pods, err := d.clientset.CoreV1().Pods(d.stack.Namespace).List(ctx, metav1.ListOptions{
		LabelSelector: d.selectorString(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list Pods: %w", err)
	}

	if len(pods.Items) == 0 {
		return nil, fmt.Errorf("no Pods found for %s", d.stack.DeploymentName())
	}

	return &pods.Items[0], nil
}
