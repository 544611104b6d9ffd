// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sigma

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Run calls fn with args on a fresh machine with the default
// configuration.
func Run(ctx context.Context, fn Item, args ...Item) (Item, error) {
	return NewMachine(MachineConfig{}).Call(ctx, fn, args...)
}

// EvalItem sigma-reduces v on a fresh machine with the default
// configuration.
func EvalItem(ctx context.Context, v Item) (Item, error) {
	return NewMachine(MachineConfig{}).Eval(ctx, v)
}

// Run evaluates the program's expressions in order on m and returns
// their values. The first failing expression stops the run.
func (p *Program) Run(ctx context.Context, m *Machine) ([]Item, error) {
	out := make([]Item, 0, len(p.Exprs))
	for i, e := range p.Exprs {
		v, err := m.Eval(ctx, e)
		if err != nil {
			return out, fmt.Errorf("%s: expression %d: %w", p.Name, i+1, err)
		}
		out = append(out, v)
	}
	log.Infof("machine %s: %s: %d expressions in %d steps", m.ID(), p.Name, len(out), m.Steps())
	return out, nil
}

// RunPrograms runs every program on its own machine, concurrently.
// Results are indexed like progs. The first error cancels the programs
// still running.
func RunPrograms(ctx context.Context, cfg MachineConfig, progs []*Program) ([][]Item, error) {
	results := make([][]Item, len(progs))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range progs {
		g.Go(func() error {
			out, err := p.Run(ctx, NewMachine(cfg))
			results[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
