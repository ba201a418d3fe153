// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"errors"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/link"
	"golang.org/x/sync/errgroup"
)

// Run executes a on ca and b on cb concurrently and returns both
// results. When one side fails, both channels are canceled so the other
// side cannot wait forever; the first error is returned.
func Run[A, B any](ca, cb *link.Channel, a kont.Eff[A], b kont.Eff[B]) (A, B, error) {
	var ra A
	var rb B
	g, ctx := errgroup.WithContext(context.Background())
	stop := context.AfterFunc(ctx, func() {
		// Wait cancels with context.Canceled after a clean run.
		if errors.Is(context.Cause(ctx), context.Canceled) {
			return
		}
		_ = ca.Cancel()
		_ = cb.Cancel()
	})
	defer stop()

	g.Go(func() (err error) {
		ra, err = Exec(ca, a)
		return err
	})
	g.Go(func() (err error) {
		rb, err = Exec(cb, b)
		return err
	})
	err := g.Wait()
	return ra, rb, err
}
