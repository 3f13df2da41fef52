// Package image turns stored file URIs into public URLs, either directly
// through stream wrapper base URLs or through named image styles, and
// normalises the result into the relative form embedded in markup.
package image
