package catalog

// ChangeFeed notifies about category table changes so the cached tree can
// be rebuilt. Subscribe returns a cancel function; the transport behind it
// (Postgres NOTIFY, polling, anything) is the implementation's business.
type ChangeFeed interface {
	Subscribe(onChange func()) (cancel func(), err error)
}
