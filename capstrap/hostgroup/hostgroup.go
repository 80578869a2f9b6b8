// Package hostgroup batches hosts so one bootstrap invocation can
// provision a whole capture fleet.
package hostgroup

import (
	"context"
	"fmt"
	"sort"
	"sync"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/netcapops/capstrap/capstrap/host"
)

type HostGroup struct {
	sync.RWMutex
	Hosts map[string]*host.Host
}

// NewHostGroup creates a new HostGroup with the given hosts.
func NewHostGroup(hosts ...*host.Host) *HostGroup {
	hostMap := make(map[string]*host.Host)
	for _, h := range hosts {
		hostMap[h.Hostname] = h
	}
	return &HostGroup{Hosts: hostMap}
}

// AddHost adds a host to the HostGroup.
func (hg *HostGroup) AddHost(h *host.Host) {
	hg.Lock()
	defer hg.Unlock()
	hg.Hosts[h.Hostname] = h
}

// RemoveHost removes a host from the HostGroup by its hostname.
func (hg *HostGroup) RemoveHost(hostname string) {
	hg.Lock()
	defer hg.Unlock()
	delete(hg.Hosts, hostname)
}

// HasHost checks if a host with the given hostname exists in the HostGroup.
func (hg *HostGroup) HasHost(hostname string) bool {
	hg.RLock()
	defer hg.RUnlock()
	_, exists := hg.Hosts[hostname]
	return exists
}

// Names returns the hostnames in sorted order so runs visit hosts in a
// stable sequence.
func (hg *HostGroup) Names() []string {
	hg.RLock()
	defer hg.RUnlock()

	names := make([]string, 0, len(hg.Hosts))
	for name := range hg.Hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForEach runs action against every host, at most maxConcurrency at a
// time. Values below one run sequentially, which keeps console output
// readable on a single terminal.
func (hg *HostGroup) ForEach(ctx context.Context, maxConcurrency int, action func(ctx context.Context, h *host.Host) error) error {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	names := hg.Names()

	sem := make(chan struct{}, maxConcurrency)
	errCh := make(chan error, len(names))
	var wg sync.WaitGroup

	for _, name := range names {
		hg.RLock()
		h := hg.Hosts[name]
		hg.RUnlock()
		if h == nil {
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(h *host.Host) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := action(ctx, h); err != nil {
				errCh <- fmt.Errorf("host %s: %w", h.DisplayName(), err)
			}
		}(h)
	}

	wg.Wait()
	close(errCh)

	var result *multierror.Error
	for err := range errCh {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}
