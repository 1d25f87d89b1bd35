package bench

import "fmt"

// Command is one 3-byte SPI transaction: address high, address low, value.
// The top bit of the first byte requests a read.
type Command [3]byte

// Read returns true for a read command
func (c Command) Read() bool {
	return c[0]&0x80 != 0
}

// Address is the 15-bit register address
func (c Command) Address() uint16 {
	return uint16(c[0]&0x7f)<<8 | uint16(c[1])
}

// Value is the data byte of a write
func (c Command) Value() byte {
	return c[2]
}

func (c Command) String() string {
	op := "w"
	if c.Read() {
		op = "r"
	}
	return fmt.Sprintf("%s %#04x %#02x", op, c.Address(), c.Value())
}

// Sequence is a named raw command table
type Sequence struct {
	Name     string
	Commands []Command
}

// Len is the number of commands in the sequence
func (s Sequence) Len() int {
	return len(s.Commands)
}

// Transactor performs a full-duplex SPI transfer in place
type Transactor interface {
	WriteAndRead(buf []byte) error
}

// Apply sends every command of seq in order.  Each command is copied before
// the transfer so the table is never overwritten by the read data.
func Apply(tx Transactor, seq Sequence) error {
	for i, c := range seq.Commands {
		buf := c
		if err := tx.WriteAndRead(buf[:]); err != nil {
			return fmt.Errorf("%s: command %d (%s): %w", seq.Name, i, c, err)
		}
	}
	return nil
}
