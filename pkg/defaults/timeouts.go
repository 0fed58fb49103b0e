// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package defaults

import "time"

// Kubernetes timeouts for K8s API operations.
const (
	// K8sRequestTimeout is the timeout for individual K8s API calls.
	K8sRequestTimeout = 30 * time.Second

	// K8sRolloutTimeout is the default timeout for waiting for the
	// inference deployment to become available. Image pulls for
	// inference-serving images are large, so this is generous.
	K8sRolloutTimeout = 15 * time.Minute

	// K8sDeletionTimeout is the default timeout for waiting for resource
	// deletion, including namespace finalization.
	K8sDeletionTimeout = 5 * time.Minute

	// K8sPodReadyTimeout is the timeout for waiting for pods to be ready
	// before log streaming.
	K8sPodReadyTimeout = 60 * time.Second
)

// Poll intervals for wait loops.
const (
	// K8sPollInterval is the interval between polls when waiting on
	// resource state transitions.
	K8sPollInterval = 500 * time.Millisecond

	// StatusPollInterval is the interval between status refreshes in
	// watch mode.
	StatusPollInterval = 2 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLIDeployTimeout is the default timeout for the deploy command.
	CLIDeployTimeout = 20 * time.Minute

	// CLIDeleteTimeout is the default timeout for the delete command.
	CLIDeleteTimeout = 10 * time.Minute
)

// OCI timeouts for registry operations.
const (
	// OCIPushTimeout is the default timeout for pushing a rendered
	// manifest bundle to an OCI registry.
	OCIPushTimeout = 2 * time.Minute
)
