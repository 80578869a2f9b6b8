package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/netcapops/capstrap/capstrap/bootstrap"
	"github.com/netcapops/capstrap/capstrap/config"
	"github.com/netcapops/capstrap/capstrap/console"
	"github.com/netcapops/capstrap/capstrap/doctor"
	"github.com/netcapops/capstrap/capstrap/host"
	"github.com/netcapops/capstrap/capstrap/hostgroup"
	"github.com/netcapops/capstrap/capstrap/netprobe"
	"github.com/netcapops/capstrap/capstrap/privilege"
	"github.com/netcapops/capstrap/logger"
)

// version is overridden at build time via -ldflags.
var version = "devel"

// rootChecker gates runs that install on the invoking machine.
var rootChecker = &privilege.Checker{}

type flags struct {
	Concurrency        int
	ConfigPath         string
	Debug              bool
	Doctor             bool
	DryRun             bool
	Hostnames          []string
	Ifaces             bool
	KeyPassPrompt      bool
	LogFile            string
	LogFormat          string
	PasswordPrompt     bool
	Port               string
	ReportFile         string
	ShowVersion        bool
	SudoPasswordPrompt bool
	Username           string
}

func parseFlags() *flags {
	f := &flags{}
	pflag.BoolVar(&f.Debug, "debug", false, "Enable debug log level")
	pflag.BoolVar(&f.Doctor, "doctor", false, "Check capture readiness without installing anything")
	pflag.BoolVar(&f.DryRun, "dry-run", false, "Print the provisioning steps without executing them")
	pflag.BoolVarP(&f.Ifaces, "ifaces", "D", false, "List capture interfaces and exit")
	pflag.BoolVar(&f.KeyPassPrompt, "keypass", false, "Prompt for the SSH key passphrase")
	pflag.BoolVar(&f.PasswordPrompt, "password", false, "Prompt for the SSH password")
	pflag.BoolVar(&f.SudoPasswordPrompt, "sudo-password", false, "Prompt for the sudo password")
	pflag.BoolVarP(&f.ShowVersion, "version", "V", false, "Print the version and exit")
	pflag.IntVar(&f.Concurrency, "concurrency", 0, "Maximum number of hosts provisioned at once")
	pflag.StringArrayVar(&f.Hostnames, "hostname", nil, "Host to provision; repeat for a fleet (default: this machine)")
	pflag.StringVar(&f.ConfigPath, "config", config.DefaultPath, "Path to the INI configuration")
	pflag.StringVar(&f.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	pflag.StringVar(&f.LogFormat, "log-format", "", "Log format: text or json")
	pflag.StringVar(&f.Port, "port", "", "SSH port for remote hosts")
	pflag.StringVar(&f.ReportFile, "report", "", "Write a JSON run report to this file")
	pflag.StringVar(&f.Username, "username", "", "SSH user for remote hosts")
	pflag.Parse()
	return f
}

func main() {
	os.Exit(run(parseFlags(), console.New(os.Stdout)))
}

func run(f *flags, out *console.Console) int {
	if f.ShowVersion {
		fmt.Fprintf(out.Out, "capstrap %s\n", version)
		return 0
	}

	cfg, err := config.Load(f.ConfigPath)
	if err != nil {
		out.Problem("Could not read %s: %v", f.ConfigPath, err)
		return 1
	}

	if err := logger.Configure(logger.Options{
		Level:  cfg.LogLevel,
		File:   firstNonEmpty(f.LogFile, cfg.LogFile),
		Format: firstNonEmpty(f.LogFormat, cfg.LogFormat),
		Debug:  f.Debug,
	}); err != nil {
		out.Problem("%v", err)
		return 1
	}

	if f.Ifaces {
		return listInterfaces(out)
	}

	hostnames := f.Hostnames
	if len(hostnames) == 0 {
		hostnames = cfg.Hosts
	}

	if needsRoot(f, hostnames) {
		if err := rootChecker.RequireRoot(); err != nil {
			out.Problem("capstrap requires root. Run: sudo capstrap")
			return 1
		}
	}

	password, keyPass, sudoPass := readPasswords(f)
	options := buildHostOptions(f, cfg, password, keyPass, sudoPass)
	// The invoked tools' own output rides the console's stream.
	options = append(options, host.WithOutput(out.Out, os.Stderr))

	hg, err := initializeHosts(hostnames, options)
	if err != nil {
		out.Problem("%v", err)
		return 1
	}

	if f.Doctor {
		return runDoctor(out, hg)
	}

	report := bootstrap.NewReport()
	runner := &bootstrap.Runner{
		Console:     out,
		NextCommand: cfg.NextCommand,
		DryRun:      f.DryRun,
		Report:      report,
	}

	concurrency := f.Concurrency
	if concurrency == 0 {
		concurrency = cfg.Concurrency
	}

	err = bootstrap.Bootstrap(context.Background(), hg, runner, concurrency)

	if path := firstNonEmpty(f.ReportFile, cfg.ReportFile); path != "" && !f.DryRun {
		writeReport(path, report)
	}

	if err != nil {
		return exitCodeFor(err)
	}
	return 0
}

// needsRoot reports whether the run must pass the privilege gate. Only
// runs that install on the invoking machine do; reads and remote
// installs (where sudo runs on the far side) do not.
func needsRoot(f *flags, hostnames []string) bool {
	if f.DryRun || f.Doctor {
		return false
	}
	if len(hostnames) == 0 {
		return true
	}
	for _, name := range hostnames {
		switch name {
		case "", "localhost", "127.0.0.1", "::1":
			return true
		}
	}
	return false
}

func readPasswords(f *flags) (password, keyPass, sudoPass string) {
	if f.PasswordPrompt {
		password = promptSecret("Enter the SSH password: ")
	}
	if f.KeyPassPrompt {
		keyPass = promptSecret("Enter the key passphrase: ")
	}
	if f.SudoPasswordPrompt {
		sudoPass = promptSecret("Enter the sudo password: ")
	}
	return password, keyPass, sudoPass
}

func promptSecret(prompt string) string {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		logrus.WithError(err).Error("Failed to read secret")
		return ""
	}
	fmt.Println()
	return string(secret)
}

func buildHostOptions(f *flags, cfg config.Config, password, keyPass, sudoPass string) []host.HostOption {
	var options []host.HostOption

	if user := firstNonEmpty(f.Username, cfg.SSHUser); user != "" {
		options = append(options, host.WithUser(user))
	}
	if password != "" {
		options = append(options, host.WithPassword(password))
	}
	if keyPass != "" {
		options = append(options, host.WithKeyPassphrase(keyPass))
	}
	if sudoPass != "" {
		options = append(options, host.WithSudoPassword(sudoPass))
	}
	if port := firstNonEmpty(f.Port, cfg.SSHPort); port != "" {
		options = append(options, host.WithPort(port))
	}

	return options
}

func initializeHosts(hostnames []string, options []host.HostOption) (*hostgroup.HostGroup, error) {
	if len(hostnames) == 0 {
		hostnames = []string{"localhost"}
	}

	hg := hostgroup.NewHostGroup()
	for _, name := range hostnames {
		h, err := host.NewHost(name, options...)
		if err != nil {
			return nil, fmt.Errorf("could not initialize host %s: %w", name, err)
		}
		hg.AddHost(h)
	}
	return hg, nil
}

func runDoctor(out *console.Console, hg *hostgroup.HostGroup) int {
	ready := true

	for _, name := range hg.Names() {
		h := hg.Hosts[name]
		out.Progress("Checking %s", h.DisplayName())

		doc := &doctor.Doctor{CommandManager: h.CommandManager}
		if h.IsLocal() {
			doc.PcapVersion = netprobe.LibraryVersion
		}

		checks, err := doc.Diagnose(context.Background())
		for _, c := range checks {
			switch {
			case c.OK:
				out.Success("%s: %s", c.Name, c.Detail)
			case c.Optional:
				out.Progress("%s: %s (optional)", c.Name, c.Detail)
			default:
				out.Problem("%s: %s", c.Name, c.Detail)
			}
		}

		if err != nil {
			out.Problem("%s is not capture-ready; run: sudo capstrap", h.DisplayName())
			ready = false
		} else {
			out.Success("%s is capture-ready", h.DisplayName())
		}
	}

	if !ready {
		return 1
	}
	return 0
}

func listInterfaces(out *console.Console) int {
	ifaces, err := netprobe.Interfaces()
	if err != nil {
		out.Problem("%v", err)
		return 1
	}
	netprobe.WriteInterfaces(out.Out, ifaces)
	return 0
}

// exitCodeFor carries the failing tool's exit code out of the process.
func exitCodeFor(err error) int {
	var stepErr *bootstrap.StepError
	if errors.As(err, &stepErr) && stepErr.ExitCode > 0 {
		return stepErr.ExitCode
	}
	return 1
}

func writeReport(path string, report *bootstrap.Report) {
	f, err := os.Create(path)
	if err != nil {
		logrus.WithError(err).Error("Could not write run report")
		return
	}
	defer f.Close()

	if err := report.WriteJSON(f); err != nil {
		logrus.WithError(err).Error("Could not render run report")
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
