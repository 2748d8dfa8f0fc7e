// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

/*
Package interop defines the narrow contracts between the glue and its
collaborators: the engine, the graphics provider and the host toolkit.
*/
package interop
