// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

package models

// InstallRequestMsg asks the app to install an activity.
type InstallRequestMsg struct {
	EntryID int
	Name    string
}

// InstallStartedMsg reports the outcome of an install request.
type InstallStartedMsg struct {
	Name string
	Err  error
}
