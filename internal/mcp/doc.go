// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
// Copyright (c) 2026 The orgchart Authors.
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

// Package mcp implements a Model Context Protocol (MCP) server that exposes
// org chart generation as tools that AI agents can call.  The tools take the
// (possibly misspelled) name of a spreadsheet, resolve it against the data
// directories and turn the reporting lines into an interactive HTML chart.
//
// Failures are reported as tool results with IsError set, never as protocol
// errors, so that the agent can relay them to the user.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio  – standard MCP stdio transport (default); suitable for local
//     agent integration.
//   - http   – Streamable HTTP transport on "/mcp"; used by the chat client.
package mcp

//go:generate mockgen -destination=mock_mcp/mock_mcp.go . Charter
