// Package sshmanager provides SSH dialing and private-key discovery for
// bootstrapping remote capture hosts.
package sshmanager

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/netcapops/capstrap/capstrap/common"
)

// SSHKeyManager loads private keys usable for public-key authentication.
type SSHKeyManager interface {
	ReadPrivateKeys(keyPassphrase string) ([]ssh.Signer, error)
}

// AgentSSHKeyManager sources signers from a running ssh-agent.
type AgentSSHKeyManager struct{}

func (km AgentSSHKeyManager) ReadPrivateKeys(_ string) ([]ssh.Signer, error) {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil, fmt.Errorf("SSH_AUTH_SOCK not set")
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("could not connect to SSH agent: %w", err)
	}
	defer conn.Close()

	signers, err := agent.NewClient(conn).Signers()
	if err != nil {
		return nil, fmt.Errorf("could not get signers from SSH agent: %w", err)
	}

	return signers, nil
}

// FileSSHKeyManager reads id_* keys from the invoking user's ~/.ssh,
// optionally decrypting them with a passphrase.
type FileSSHKeyManager struct{}

func (km FileSSHKeyManager) ReadPrivateKeys(keyPassphrase string) ([]ssh.Signer, error) {
	files, err := filepath.Glob(os.Getenv("HOME") + "/.ssh/id_*")
	if err != nil {
		return nil, err
	}

	var signers []ssh.Signer
	for _, file := range files {
		if strings.HasSuffix(file, ".pub") {
			continue
		}

		keyBytes, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}

		var signer ssh.Signer
		if keyPassphrase != "" {
			signer, err = ssh.ParsePrivateKeyWithPassphrase(keyBytes, []byte(keyPassphrase))
		} else {
			signer, err = ssh.ParsePrivateKey(keyBytes)
		}
		if err != nil {
			// Unparseable key, try the next one.
			continue
		}

		signers = append(signers, signer)
	}

	if len(signers) == 0 {
		return nil, fmt.Errorf("no usable private keys under ~/.ssh")
	}

	return signers, nil
}

// RealSSHClient dials actual SSH connections. It satisfies the command
// manager's dialer interface.
type RealSSHClient struct{}

func (c *RealSSHClient) Dial(network, addr string, config *ssh.ClientConfig, timeout time.Duration) (*ssh.Client, error) {
	config.Timeout = timeout
	return ssh.Dial(network, addr, config)
}

// Configurer assembles ssh.ClientConfigs from credentials: password auth
// when a password is present, otherwise public keys from the agent or,
// given a passphrase, from key files.
type Configurer struct{}

func (c Configurer) ClientConfig(creds common.Credentials) (*ssh.ClientConfig, error) {
	var authMethod ssh.AuthMethod

	if creds.Password != "" {
		logrus.Debug("Using password authentication")
		authMethod = ssh.Password(creds.Password)
	} else {
		logrus.Debug("Using public key authentication")
		var keyManager SSHKeyManager
		if creds.KeyPassphrase != "" {
			keyManager = FileSSHKeyManager{}
		} else {
			keyManager = AgentSSHKeyManager{}
		}

		keys, err := keyManager.ReadPrivateKeys(creds.KeyPassphrase)
		if err != nil {
			return nil, err
		}

		authMethod = ssh.PublicKeysCallback(func() ([]ssh.Signer, error) {
			return keys, nil
		})
	}

	return &ssh.ClientConfig{
		User:            creds.User,
		Auth:            []ssh.AuthMethod{authMethod},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}, nil
}
