// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package placer

import "fmt"

// UnplaceableStopsError is a recoverable error: the trip it names should be
// dropped (with a diagnostic), not treated as fatal to the whole run.
type UnplaceableStopsError struct {
	StopCount  int
	PointCount int
}

func (e *UnplaceableStopsError) Error() string {
	return fmt.Sprintf("cannot place %d stops onto %d path vertices in monotonic order", e.StopCount, e.PointCount)
}
