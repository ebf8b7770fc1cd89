// Copyright 2025 MydriaTech AB
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pemcodec

import "fmt"

// DecodingError is raised when PEM framing is malformed, such as a
// missing END terminator.
type DecodingError struct {
	Message string
	Cause   error
}

func (e *DecodingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pemcodec: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pemcodec: %s", e.Message)
}

func (e *DecodingError) Unwrap() error {
	return e.Cause
}

func newDecodingError(message string, cause error) *DecodingError {
	return &DecodingError{Message: message, Cause: cause}
}
