package aqt

// CreateIndex is the standalone `CREATE INDEX ON :Label(prop)` command.
// Composite property lists (more than one property) are rejected by the
// builder as a SemanticArityError (§7) under every dialect that accepts
// schema commands; where schema commands are not accepted at all, the
// error is a DialectFeatureError instead.
type CreateIndex struct {
	Pos        Position
	Label      string
	Properties []string
}

func (*CreateIndex) aqtNode() {}

// DropIndex is the standalone `DROP INDEX ON :Label(prop)` command.
type DropIndex struct {
	Pos        Position
	Label      string
	Properties []string
}

func (*DropIndex) aqtNode() {}

// CreateUniqueConstraint is
// `CREATE CONSTRAINT ON (v:Label) ASSERT v.prop IS UNIQUE`. The source
// grammar binds the same variable twice (once in ON (...), once in the
// ASSERT property access); both occurrences are the same identifier by
// construction, so a single Variable field carries it.
type CreateUniqueConstraint struct {
	Pos      Position
	Variable string
	Label    string
	Property string
}

func (*CreateUniqueConstraint) aqtNode() {}
