package resp

// Keyword is a protocol token with a predefined byte representation.
// CommandType and CommandKeyword implement it.
type Keyword interface {
	Bytes() []byte
}

// CommandType identifies a command (the first bulk string of a request).
type CommandType string

func (t CommandType) Bytes() []byte  { return []byte(t) }
func (t CommandType) String() string { return string(t) }

// CommandKeyword is a protocol modifier token appearing inside a command's
// argument list.
type CommandKeyword string

func (k CommandKeyword) Bytes() []byte  { return []byte(k) }
func (k CommandKeyword) String() string { return string(k) }

// Command types used by the client surface. The full command set is much
// larger; these cover the operations the typed facade issues.
const (
	CmdAuth   CommandType = "AUTH"
	CmdDel    CommandType = "DEL"
	CmdEcho   CommandType = "ECHO"
	CmdExists CommandType = "EXISTS"
	CmdExpire CommandType = "EXPIRE"
	CmdGet    CommandType = "GET"
	CmdHSet   CommandType = "HSET"
	CmdIncrBy CommandType = "INCRBY"
	CmdLPush  CommandType = "LPUSH"
	CmdMGet   CommandType = "MGET"
	CmdMSet   CommandType = "MSET"
	CmdPing   CommandType = "PING"
	CmdQuit   CommandType = "QUIT"
	CmdSelect CommandType = "SELECT"
	CmdSet    CommandType = "SET"
	CmdTTL    CommandType = "TTL"
)

// Modifier keywords.
const (
	KwCount      CommandKeyword = "COUNT"
	KwEx         CommandKeyword = "EX"
	KwKeepTTL    CommandKeyword = "KEEPTTL"
	KwLimit      CommandKeyword = "LIMIT"
	KwMatch      CommandKeyword = "MATCH"
	KwNx         CommandKeyword = "NX"
	KwPx         CommandKeyword = "PX"
	KwWithScores CommandKeyword = "WITHSCORES"
	KwXx         CommandKeyword = "XX"
)
