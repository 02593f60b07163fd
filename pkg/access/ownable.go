package access

import "tokenbank/core"

// Ownable single administrator of the ledger
type Ownable struct {
	Owner string
}

// Check caller is the administrator
func (o Ownable) Check(caller string) error {
	return core.Require(caller != "" && caller == o.Owner, core.ErrAccess, "access/not-admin")
}

// Transfer hands the administration to next
func (o *Ownable) Transfer(caller, next string) error {
	if err := o.Check(caller); err != nil {
		return err
	}

	if err := core.Require(next != "", core.ErrConfiguration, "access/empty-admin"); err != nil {
		return err
	}

	o.Owner = next
	return nil
}
