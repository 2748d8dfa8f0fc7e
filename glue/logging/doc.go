// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package logging configures the glue's internal logs.

Components log through the package-level logrus logger. Lifecycle
transitions carry "from" and "to" fields, engine thread messages carry the
phase, and graphics messages carry the context id. Output goes to stderr
unless SetOutput redirects it (the terminal toolkit redirects it to a file
while it owns the screen).
*/
package logging
