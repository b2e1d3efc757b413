package feed

// Cursor remembers the continuation token of the last merged page.
// The zero value holds no cursor.
type Cursor struct {
	next string
}

func (c *Cursor) Reset() {
	c.next = ""
}

// Advance stores the cursor returned with the last page. An empty cursor
// marks the feed as exhausted.
func (c *Cursor) Advance(next string) {
	c.next = next
}

func (c *Cursor) HasMore() bool {
	return c.next != ""
}

func (c *Cursor) Next() string {
	return c.next
}
