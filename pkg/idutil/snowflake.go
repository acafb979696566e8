package idutil

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	nodeMutex sync.Mutex
	node      *snowflake.Node
)

// SetNode changes the snowflake node id. Each running process must use a
// distinct node to keep ids unique.
func SetNode(id int64) error {
	n, err := snowflake.NewNode(id)
	if err != nil {
		return err
	}

	nodeMutex.Lock()
	node = n
	nodeMutex.Unlock()
	return nil
}

func NextSnowflake() int64 {
	nodeMutex.Lock()
	defer nodeMutex.Unlock()

	if node == nil {
		node, _ = snowflake.NewNode(0)
	}

	return node.Generate().Int64()
}
