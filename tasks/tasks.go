// Package tasks assembles the arch-setup step sequence. Each task binds
// a piece of post-install work (package installation, service
// enablement, tweaks, downloads, network setup) to a named step; the
// runner executes them in the order declared here.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	setup "github.com/aorozco-g/arch-setup"
	"github.com/aorozco-g/arch-setup/backoff"
	"github.com/aorozco-g/arch-setup/prompt"
	"github.com/aorozco-g/arch-setup/step"
	"github.com/aorozco-g/arch-setup/system"
)

// mirrorRetries bounds the advisory mirror refresh, which fails often
// on fresh installs with stale mirrorlists.
const mirrorRetries = 3

// Deps are the ports the tasks need. Exec is required; the rest default
// to working implementations.
type Deps struct {
	Exec   system.Exec
	Prompt prompt.Prompter
	Client *resty.Client
	Logger *slog.Logger
}

func (d *Deps) defaults() error {
	if d.Exec == nil {
		return errors.New("tasks: Exec is required")
	}
	if d.Client == nil {
		d.Client = resty.New().SetTimeout(2 * time.Minute)
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return nil
}

// Sequence builds the ordered step sequence for cfg. Steps whose config
// is empty (no desktop packages, no tweaks) are left out entirely;
// prompt-driven steps are left out in non-interactive runs.
func Sequence(cfg setup.Config, deps Deps) (*step.Sequence, error) {
	if err := deps.defaults(); err != nil {
		return nil, err
	}

	steps := []step.Step{
		step.New("update", step.Fatal, upgrade(deps.Exec),
			step.WithDescription("full system upgrade")),
		step.New("mirrors", step.Advisory, refreshMirrors(deps.Exec),
			step.WithDescription("refresh package databases")),
	}

	if len(cfg.Packages.Base) > 0 {
		steps = append(steps, step.New("base-packages", step.Fatal,
			installPackages(deps.Exec, cfg.Packages.Base),
			step.WithDescription("install base packages")))
	}
	if len(cfg.Packages.Desktop) > 0 {
		steps = append(steps, step.New("desktop-packages", step.Advisory,
			installPackages(deps.Exec, cfg.Packages.Desktop),
			step.WithDescription("install desktop packages")))
	}
	if cfg.Packages.AurHelper != "" {
		steps = append(steps, step.New("aur-helper", step.Advisory,
			bootstrapAurHelper(deps.Exec, cfg.Packages.AurHelper),
			step.WithDescription("bootstrap AUR helper "+cfg.Packages.AurHelper)))
	}
	if len(cfg.Services) > 0 {
		steps = append(steps, step.New("services", step.Advisory,
			enableServices(deps.Exec, cfg.Services),
			step.WithDescription("enable system services")))
	}
	if len(cfg.Tweaks) > 0 {
		steps = append(steps, step.New("tweaks", step.Advisory,
			applyTweaks(cfg.Tweaks, deps.Logger),
			step.WithDescription("apply configuration tweaks")))
	}
	if len(cfg.Themes) > 0 {
		steps = append(steps, step.New("themes", step.Advisory,
			downloadThemes(deps.Client, cfg.Themes, deps.Logger),
			step.WithDescription("download themes and dotfiles"),
			step.WithTimeout(10*time.Minute)))
	}
	if cfg.Network.Wifi && !cfg.NonInteractive && deps.Prompt != nil {
		steps = append(steps, step.New("wifi", step.Advisory,
			joinWifi(deps.Exec, deps.Prompt),
			step.WithDescription("join a Wi-Fi network")))
	}
	if cfg.Network.Bluetooth && !cfg.NonInteractive && deps.Prompt != nil {
		steps = append(steps, step.New("bluetooth", step.Advisory,
			pairBluetooth(deps.Exec, deps.Prompt),
			step.WithDescription("pair a Bluetooth device")))
	}

	steps = append(steps, step.New("cleanup", step.Advisory,
		cleanup(deps.Exec),
		step.WithDescription("remove orphans and clear the package cache")))

	return step.NewSequence(steps...)
}

func upgrade(e system.Exec) step.Action {
	return func(ctx context.Context) error {
		_, err := e.Run(ctx, "pacman -Syu --noconfirm")
		return err
	}
}

func refreshMirrors(e system.Exec) step.Action {
	return func(ctx context.Context) error {
		_, err := system.RunWithRetry(ctx, e, "pacman -Syy --noconfirm",
			mirrorRetries, backoff.DefaultStrategy())
		return err
	}
}

func installPackages(e system.Exec, pkgs []string) step.Action {
	command := "pacman -S --needed --noconfirm " + strings.Join(pkgs, " ")
	return func(ctx context.Context) error {
		_, err := e.Run(ctx, command)
		return err
	}
}

// bootstrapAurHelper builds the helper from the AUR with makepkg, which
// refuses to run as root; the build happens as the invoking user.
func bootstrapAurHelper(e system.Exec, helper string) step.Action {
	return func(ctx context.Context) error {
		command := fmt.Sprintf(
			"git clone https://aur.archlinux.org/%[1]s.git /tmp/%[1]s && cd /tmp/%[1]s && makepkg -si --noconfirm",
			helper)
		_, err := e.Run(ctx, command)
		return err
	}
}

// enableServices enables every service even when some fail, so one
// misnamed unit does not block the rest.
func enableServices(e system.Exec, services []string) step.Action {
	return func(ctx context.Context) error {
		var errs []error
		for _, svc := range services {
			if _, err := e.Run(ctx, "systemctl enable --now "+svc); err != nil {
				errs = append(errs, fmt.Errorf("enable %s: %w", svc, err))
			}
		}
		return errors.Join(errs...)
	}
}

func cleanup(e system.Exec) step.Action {
	return func(ctx context.Context) error {
		// No orphans is exit status 1 from pacman -Qtdq; treat it as done.
		if out, err := e.Run(ctx, "pacman -Qtdq"); err == nil && out != "" {
			if _, err := e.Run(ctx, "pacman -Rns --noconfirm "+strings.Join(strings.Fields(out), " ")); err != nil {
				return err
			}
		}
		_, err := e.Run(ctx, "pacman -Sc --noconfirm")
		return err
	}
}
