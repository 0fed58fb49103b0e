/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package deployer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

var (
	deployDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nisctl_deploy_duration_seconds",
			Help:    "Time taken to apply all stack resources",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	deployTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nisctl_deploy_total",
			Help: "Total number of deploy attempts",
		},
		[]string{"status"}, // success or error
	)

	deleteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nisctl_delete_duration_seconds",
			Help:    "Time taken to remove all stack resources",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	deleteTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nisctl_delete_total",
			Help: "Total number of delete attempts",
		},
		[]string{"status"}, // success or error
	)

	rolloutWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nisctl_rollout_wait_duration_seconds",
			Help:    "Time from deploy until the workload reported available",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600, 900},
		},
	)
)
