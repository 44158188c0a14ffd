// Profiles Manager - Named profile picker for applications
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// profiles-manager lets a user pick a named profile for an application and
// hands the choice to that application.
//
// Usage:
//
//	profiles-manager --app-id myapp                  # interactive picker
//	profiles-manager --app-id myapp -e MYAPP_PROFILE # print an export line
//	profiles-manager --app-id myapp -p myapp -- -v   # run myapp with the profile
package main

import "github.com/cloud-exit/profiles-manager/cmd"

func main() {
	cmd.Execute()
}
