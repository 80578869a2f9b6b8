package doctor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cm "github.com/netcapops/capstrap/capstrap/commandmanager"
)

// MockCommandManager answers canned output keyed on the full command
// line; unknown commands fail like a missing binary would.
type MockCommandManager struct {
	Outputs map[string]string
}

func (m *MockCommandManager) run(config cm.CommandConfig) (cm.CommandResult, error) {
	key := strings.Join(append([]string{config.Command}, config.Args...), " ")
	if output, exists := m.Outputs[key]; exists {
		return cm.CommandResult{STDOUT: output}, nil
	}
	return cm.CommandResult{ExitCode: 127}, errors.New("command not found: " + key)
}

func (m *MockCommandManager) RunLocal(ctx context.Context, config cm.CommandConfig) (cm.CommandResult, error) {
	return m.run(config)
}

func (m *MockCommandManager) RunRemote(ctx context.Context, config cm.CommandConfig) (cm.CommandResult, error) {
	return m.run(config)
}

func (m *MockCommandManager) Run(ctx context.Context, config cm.CommandConfig) (cm.CommandResult, error) {
	return m.run(config)
}

func readyHostOutputs() map[string]string {
	outputs := map[string]string{
		"sh -c command -v python3": "/usr/bin/python3\n",
		"sh -c command -v tshark":  "/usr/bin/tshark\n",
		"sh -c command -v tcpdump": "/usr/bin/tcpdump\n",
		"sh -c command -v dumpcap": "/usr/bin/dumpcap\n",
		"python3 -m pip --version": "pip 23.0.1 from /usr/lib/python3/dist-packages/pip (python 3.11)\n",
	}
	for _, module := range []string{"scapy", "rich", "manuf", "cryptography", "dpkt", "requests"} {
		outputs["python3 -c import "+module] = ""
	}
	return outputs
}

func findCheck(t *testing.T, checks []Check, name string) Check {
	t.Helper()
	for _, c := range checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q", name)
	return Check{}
}

func TestDiagnoseReadyHost(t *testing.T) {
	doc := &Doctor{CommandManager: &MockCommandManager{Outputs: readyHostOutputs()}}

	checks, err := doc.Diagnose(context.Background())
	require.NoError(t, err)

	for _, c := range checks {
		assert.True(t, c.OK, "check %s: %s", c.Name, c.Detail)
	}

	pip := findCheck(t, checks, "pip")
	assert.Equal(t, "pip 23.0.1 from /usr/lib/python3/dist-packages/pip (python 3.11)", pip.Detail)
}

func TestDiagnoseMissingRequiredTool(t *testing.T) {
	outputs := readyHostOutputs()
	delete(outputs, "sh -c command -v tshark")
	doc := &Doctor{CommandManager: &MockCommandManager{Outputs: outputs}}

	checks, err := doc.Diagnose(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tshark")

	tshark := findCheck(t, checks, "tshark")
	assert.False(t, tshark.OK)
	assert.Equal(t, "not found on PATH", tshark.Detail)
}

func TestDiagnoseMissingOptionalToolPasses(t *testing.T) {
	outputs := readyHostOutputs()
	delete(outputs, "sh -c command -v tcpdump")
	doc := &Doctor{CommandManager: &MockCommandManager{Outputs: outputs}}

	checks, err := doc.Diagnose(context.Background())
	require.NoError(t, err)

	tcpdump := findCheck(t, checks, "tcpdump")
	assert.False(t, tcpdump.OK)
	assert.True(t, tcpdump.Optional)
}

func TestDiagnoseMissingPythonModule(t *testing.T) {
	outputs := readyHostOutputs()
	delete(outputs, "python3 -c import scapy")
	doc := &Doctor{CommandManager: &MockCommandManager{Outputs: outputs}}

	checks, err := doc.Diagnose(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "python-scapy")

	scapy := findCheck(t, checks, "python-scapy")
	assert.False(t, scapy.OK)
	assert.Equal(t, "import failed", scapy.Detail)
}

func TestDiagnoseReportsPcapVersion(t *testing.T) {
	doc := &Doctor{
		CommandManager: &MockCommandManager{Outputs: readyHostOutputs()},
		PcapVersion:    func() string { return "libpcap version 1.10.4" },
	}

	checks, err := doc.Diagnose(context.Background())
	require.NoError(t, err)

	pcap := findCheck(t, checks, "libpcap")
	assert.True(t, pcap.OK)
	assert.Equal(t, "libpcap version 1.10.4", pcap.Detail)
}

func TestDiagnoseAggregatesAllFailures(t *testing.T) {
	outputs := readyHostOutputs()
	delete(outputs, "sh -c command -v python3")
	delete(outputs, "sh -c command -v tshark")
	doc := &Doctor{CommandManager: &MockCommandManager{Outputs: outputs}}

	_, err := doc.Diagnose(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "python3")
	assert.Contains(t, err.Error(), "tshark")
}
