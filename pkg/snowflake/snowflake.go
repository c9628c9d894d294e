package snowflake

import (
	"fmt"
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
)

var node *snowflake.Node

func init() {
	host, _ := os.Hostname()
	node, _ = snowflake.NewNode(NodeID(fmt.Sprintf("%s/%d", host, os.Getpid())))
}

// Init 启动时设置节点号，写同一张表的进程必须使用不同的节点号
func Init(nodeID int64) error {
	n, err := snowflake.NewNode(nodeID)
	if err != nil {
		return fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	node = n
	return nil
}

// NodeID 把进程标识散列到 [0, 1024)
func NodeID(seed string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return int64(h.Sum32() % (1 << snowflake.NodeBits))
}

// GenID outbox 等内部表主键
func GenID() int64 {
	return node.Generate().Int64()
}
