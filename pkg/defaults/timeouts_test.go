package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Wait loops assume the poll interval is much shorter than any timeout it
// guards; a misordering here turns waits into single-shot checks.
func TestTimeoutOrdering(t *testing.T) {
	assert.Less(t, K8sPollInterval, K8sDeletionTimeout)
	assert.Less(t, K8sPollInterval, K8sRolloutTimeout)
	assert.Less(t, K8sPollInterval, K8sPodReadyTimeout)
	assert.Less(t, StatusPollInterval, K8sRolloutTimeout)
}

func TestCommandTimeoutsCoverWaits(t *testing.T) {
	// The deploy command timeout must leave room for the rollout wait.
	assert.Greater(t, CLIDeployTimeout, K8sRolloutTimeout)
	// The delete command timeout must leave room for namespace finalization.
	assert.Greater(t, CLIDeleteTimeout, K8sDeletionTimeout)
}
