/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package category identifies data series, such as the columns of an aligned
// dataset or the lanes of a timeline.  A Category has a stable ID, a display
// name shown in legends and tooltips, and a longer description.
package category

import "strings"

// Category defines a data category.
type Category struct {
	id, description, displayName string
}

// New returns a new Category with the provided ID, display name, and
// description.
func New(id, displayName, description string) *Category {
	return &Category{
		id:          id,
		description: description,
		displayName: displayName,
	}
}

// FromName returns a Category whose display name is name, and whose ID is
// name lower-cased with runs of non-alphanumerics replaced by '_'.
func FromName(name string) *Category {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && sb.Len() > 0 {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	return New(strings.TrimSuffix(sb.String(), "_"), name, "")
}

// ID returns the category's ID.
func (c *Category) ID() string {
	return c.id
}

// DisplayName returns the category's display name, or its ID if it has none.
// A nil Category has an empty name.
func (c *Category) DisplayName() string {
	if c == nil {
		return ""
	}
	if c.displayName == "" {
		return c.id
	}
	return c.displayName
}

// Description returns the category's description.
func (c *Category) Description() string {
	return c.description
}

// IDs returns the IDs of the provided categories, in order.
func IDs(cats ...*Category) []string {
	ret := make([]string, len(cats))
	for idx, cat := range cats {
		ret[idx] = cat.id
	}
	return ret
}
