// Copyright 2016 Patrick Brosi
// Authors: info@patrickbrosi.de
//
// Use of this source code is governed by a GPL v2
// license that can be found in the LICENSE file

package profile

import "fmt"

// UnknownProfileError is returned by Catalog.Get when name names no
// profile in the catalog.
type UnknownProfileError struct {
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("profile %q not found", e.Name)
}
