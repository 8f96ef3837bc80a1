package enquiry

import "errors"

var ErrEnquiryNotFound = errors.New("enquiry not found")
