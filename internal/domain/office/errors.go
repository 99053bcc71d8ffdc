package office

import "errors"

var ErrOfficeNotFound = errors.New("office location not found")
