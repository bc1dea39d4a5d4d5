// common.go
//
// A recipe sharing data service on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of recipedb.
// recipedb is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// recipedb is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with recipedb.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/recipedb/internal/middleware"
	"github.com/localnerve/recipedb/internal/services"
	"github.com/localnerve/recipedb/internal/types"
	"gorm.io/gorm"
)

// parseID reads an unsigned integer path parameter. Zero parses and then
// fails its lookup like any other unknown id.
func parseID(c *fiber.Ctx, name, message string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, types.NewValidationError(message)
	}
	return id, nil
}

// recipeID reads the :id path parameter
func recipeID(c *fiber.Ctx) (uint64, error) {
	return parseID(c, "id", "Bad id")
}

// bindJSON decodes the request body into out. An empty body leaves out
// untouched so field validation reports what is missing.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return types.NewValidationError("Invalid request body")
	}
	return nil
}

// scopedDB binds the request context to db
func scopedDB(c *fiber.Ctx, db *gorm.DB) *gorm.DB {
	return db.WithContext(c.UserContext())
}

func principal(c *fiber.Ctx) *services.Principal {
	return middleware.Principal(c)
}

// uploadInput reads the multipart fields of a media upload
func uploadInput(c *fiber.Ctx, withPrimary bool) services.UploadInput {
	var fh *multipart.FileHeader
	if f, err := c.FormFile("file"); err == nil {
		fh = f
	}

	in := services.UploadInput{
		File:      fh,
		MediaType: c.FormValue("media_type"),
		Caption:   c.FormValue("caption"),
	}
	if withPrimary {
		in.IsPrimary = strings.TrimSpace(c.FormValue("is_primary")) == "true"
	}
	if raw := strings.TrimSpace(c.FormValue("sort_order")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			in.SortOrder = &n
		}
	}
	return in
}
